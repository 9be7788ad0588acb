package usecase

import "github.com/wozhendeai/grip/internal/domain"

// Partition splits definitions into reachable and unreachable ones.
//
// A definition d is reachable when (d.Module, d.Name) is in the used set
// directly, or when some barrel edge whose exposed name was used through the
// barrel resolves to (d.Module, d.Name). The two conditions are a logical OR.
// Edges whose exposed name is listed in ambiguous are ignored entirely:
// picking one of several same-named edges could wrongly preserve or wrongly
// delete a function, so those symbols count only through direct usage.
func Partition(
	defs []domain.FunctionDef,
	used *domain.UsageSet,
	edges []domain.ReexportEdge,
	ambiguous []string,
) (reachable, unreachable []domain.FunctionDef) {
	disabled := make(map[string]bool, len(ambiguous))
	for _, name := range ambiguous {
		disabled[name] = true
	}

	viaBarrel := make(map[domain.UsageKey]bool)
	for _, e := range edges {
		if disabled[e.Exposed] {
			continue
		}
		if used.Contains(domain.UsageKey{Module: domain.BarrelModule, Symbol: e.Exposed}) {
			viaBarrel[domain.UsageKey{Module: e.OriginModule, Symbol: e.OriginSymbol}] = true
		}
	}

	for _, d := range defs {
		key := domain.UsageKey{Module: d.Module, Symbol: d.Name}
		if used.Contains(key) || viaBarrel[key] {
			reachable = append(reachable, d)
		} else {
			unreachable = append(unreachable, d)
		}
	}
	return reachable, unreachable
}
