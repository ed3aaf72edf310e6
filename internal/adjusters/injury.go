package adjusters

import (
	"fmt"

	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/config"
	"github.com/omalleyandy/billy-walters-sports-analyzer-sub012/internal/models"
)

// InjuryImpactCalculator converts a roster injury report into a negative
// point adjustment. Each player carries a position-tier value scaled by the
// status unavailability probability; two or more impacted starters in one
// position group trip a compounding crisis multiplier beyond the linear sum.
type InjuryImpactCalculator struct {
	cfg config.InjuryConfig
}

// NewInjuryImpactCalculator creates an injury calculator from configuration.
func NewInjuryImpactCalculator(cfg config.InjuryConfig) *InjuryImpactCalculator {
	return &InjuryImpactCalculator{cfg: cfg}
}

// Calculate returns the signed injury adjustment for one team. A nil report
// degrades the layer to zero.
func (c *InjuryImpactCalculator) Calculate(report *models.InjuryReport) models.Adjustment {
	if report == nil {
		return models.Adjustment{Incomplete: true}
	}

	adj := models.Adjustment{}
	impactedStarters := make(map[string]int)
	total := 0.0

	for _, e := range report.Entries {
		mult, ok := c.cfg.StatusMultipliers[string(e.Status)]
		if !ok || mult == 0 {
			continue
		}

		value := e.PointValue
		if value == 0 {
			value = c.cfg.PositionValues[string(e.Position)]
		}
		if value == 0 {
			continue
		}

		impact := value * mult
		total += impact
		adj.Detail = append(adj.Detail, fmt.Sprintf("%s(%s,%s):%+.2f", e.Player, e.Position, e.Status, -impact))

		if e.Starter {
			group := c.cfg.PositionGroups[string(e.Position)]
			if group == "" {
				group = string(e.Position)
			}
			impactedStarters[group]++
		}
	}

	// Depth charts are fragile: losing two starters from one group costs
	// more than the sum of the parts.
	for group, n := range impactedStarters {
		if n >= c.cfg.CrisisStarterMin {
			total *= c.cfg.CrisisMultiplier
			adj.Detail = append(adj.Detail, fmt.Sprintf("position_group_crisis(%s):x%.2f", group, c.cfg.CrisisMultiplier))
			break
		}
	}

	adj.Points = -total
	return adj
}
