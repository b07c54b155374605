package projection

import (
	"strconv"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// idMarkers map the id infixes of generated transactions to their origin kind.
// "-growth-" is an older spelling of investment value ids.
var idMarkers = []struct {
	marker string
	kind   models.OriginKind
}{
	{"-installment-", models.OriginInstallment},
	{"-recurring-", models.OriginRecurring},
	{"-value-", models.OriginInvestmentValue},
	{"-growth-", models.OriginInvestmentValue},
}

// ParseOrigin recovers the provenance of a transaction id as it arrives from a client.
// Ids without a generated-transaction infix are their own parent.
func ParseOrigin(id string) models.Origin {
	for _, m := range idMarkers {
		pos := strings.LastIndex(id, m.marker)
		if pos <= 0 {
			continue
		}
		origin := models.Origin{Kind: m.kind, ParentID: id[:pos]}
		if n, err := strconv.Atoi(id[pos+len(m.marker):]); err == nil {
			origin.Index = n
		}
		return origin
	}
	return models.Origin{Kind: models.OriginOriginal, ParentID: id}
}
