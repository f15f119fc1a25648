package roles

import (
	"fmt"

	"github.com/tumbleweed-games/mostwanted/internal/dependencies/random"
	"github.com/tumbleweed-games/mostwanted/internal/model"
)

// townsfolk are the catalog entries beyond the two mandatory roles
var townsfolk = []model.Role{
	"Snake Oil Salesman",
	"Barber",
	"Barkeep",
	"Town Drunk",
	"Gambler",
	"Schoolteacher",
	"Rancher",
	"Mayor",
	"Banker",
	"Blacksmith",
	"Doctor",
	"Tracker",
}

// CatalogSize is the number of roles available for assignment
const CatalogSize = 14

// MostWantedRole builds the town-specific outlaw role label
func MostWantedRole(code model.TownCode) model.Role {
	return model.Role(fmt.Sprintf("%s's Most Wanted", code))
}

// Catalog returns the full role catalog for a town: Sheriff, the town's
// Most Wanted, and the twelve townsfolk. The table is constant apart from
// the Most Wanted label.
func Catalog(code model.TownCode) []model.Role {
	catalog := make([]model.Role, 0, CatalogSize)
	catalog = append(catalog, model.RoleSheriff, MostWantedRole(code))
	catalog = append(catalog, townsfolk...)
	return catalog
}

// Assigner produces role plans for towns
type Assigner struct {
	random random.Random
}

// NewAssigner creates a new Assigner
func NewAssigner(rnd random.Random) *Assigner {
	return &Assigner{random: rnd}
}

// Assign returns a role plan for n players. Sheriff and the Most Wanted
// are always in the plan; the remaining n-2 slots are drawn from a uniform
// Fisher-Yates permutation of the townsfolk, and the full plan is shuffled
// again so every player is equally likely to receive any role in it.
//
// A naive shuffle-then-truncate over the whole catalog would include each
// mandatory role only with probability n/CatalogSize, so inclusion is
// guaranteed by construction instead.
func (a *Assigner) Assign(code model.TownCode, n int) ([]model.Role, error) {
	if n < 2 || n > CatalogSize {
		return nil, fmt.Errorf("cannot assign roles to %d players from a catalog of %d", n, CatalogSize)
	}

	pool := make([]model.Role, len(townsfolk))
	copy(pool, townsfolk)
	a.random.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	plan := make([]model.Role, 0, n)
	plan = append(plan, model.RoleSheriff, MostWantedRole(code))
	plan = append(plan, pool[:n-2]...)

	a.random.Shuffle(len(plan), func(i, j int) {
		plan[i], plan[j] = plan[j], plan[i]
	})

	return plan, nil
}

// Validate checks the role-exclusivity invariants of a plan: every entry
// non-empty and distinct, exactly one Sheriff, exactly one Most Wanted.
func Validate(plan []model.Role) error {
	seen := make(map[model.Role]struct{}, len(plan))
	sheriffs, outlaws := 0, 0

	for _, role := range plan {
		if role == "" {
			return fmt.Errorf("%w: empty role in plan", model.ErrRoleAssignment)
		}
		if _, dup := seen[role]; dup {
			return fmt.Errorf("%w: role %q assigned twice", model.ErrRoleAssignment, role)
		}
		seen[role] = struct{}{}

		if role == model.RoleSheriff {
			sheriffs++
		}
		if role.IsMostWanted() {
			outlaws++
		}
	}

	if sheriffs != 1 {
		return fmt.Errorf("%w: expected exactly one Sheriff, got %d", model.ErrRoleAssignment, sheriffs)
	}
	if outlaws != 1 {
		return fmt.Errorf("%w: expected exactly one Most Wanted, got %d", model.ErrRoleAssignment, outlaws)
	}
	return nil
}
