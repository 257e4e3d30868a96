package merge

import (
	"fmt"
	"strings"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/classify"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

// defaultSuspiciousSurnames is a curated list of surnames known to
// collide across unrelated leagues in the community database. The
// list rots as players transfer; production deployments load a
// maintained copy from configuration instead.
var defaultSuspiciousSurnames = []string{
	"rice",
	"kane",
	"walker",
	"stones",
	"foden",
	"saka",
	"bellingham",
	"grealish",
}

// filterSuspicious drops community-database players whose surnames
// belong to the cross-border collision list when the subject is a
// national team they plainly do not play for. Each exclusion becomes a
// merge issue so callers can see what was filtered.
func (m *Merger) filterSuspicious(subject model.Subject, players []model.PlayerRecord, out *Output) []model.PlayerRecord {
	kept := make([]model.PlayerRecord, 0, len(players))
	for _, p := range players {
		if m.isSuspicious(subject, p) {
			out.Issues = append(out.Issues,
				fmt.Sprintf("community source returned suspicious player %q for subject %q; excluded", p.Name, subject.Name))
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func (m *Merger) isSuspicious(subject model.Subject, p model.PlayerRecord) bool {
	fields := strings.Fields(classify.Fold(p.Name))
	if len(fields) == 0 {
		return false
	}
	surname := fields[len(fields)-1]

	for _, s := range m.suspiciousSurnames {
		if surname != classify.Fold(s) {
			continue
		}
		// A flagged surname is fine when the player's own nationality
		// matches the subject; the filter targets foreign club-only
		// surnames surfacing under an unrelated national team.
		if p.Nationality != "" && classify.Fold(p.Nationality) == classify.Fold(subject.Name) {
			return false
		}
		return true
	}
	return false
}
