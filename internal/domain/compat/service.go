// Package compat decides whether a species can be introduced into water with
// the given salinity and temperature.
package compat

import (
	"fmt"
	"strings"

	"github.com/yanqian/salinity-watch/internal/domain/species"
	"github.com/yanqian/salinity-watch/internal/domain/water"
	apperrors "github.com/yanqian/salinity-watch/pkg/errors"
)

// Classifier is a pure function of its inputs and the reference table. It
// holds no mutable state and is safe for concurrent use.
type Classifier struct {
	table *species.Table
	rules []rule
}

// NewClassifier binds a classifier to a reference table.
func NewClassifier(table *species.Table) *Classifier {
	return &Classifier{table: table, rules: defaultRules}
}

// Check resolves query against the table and judges reading against the
// matched profile. Only caller misuse (a missing or impossible reading) is an
// error; an unknown species is a warning verdict.
func (c *Classifier) Check(query string, reading *water.Reading) (Verdict, error) {
	if reading == nil {
		return Verdict{}, apperrors.Wrap(apperrors.CodeInvalidInput, "reading is required", nil)
	}
	if err := reading.Validate(); err != nil {
		return Verdict{}, err
	}

	profile, ok := c.table.Lookup(query)
	if !ok {
		return unknownSpecies(query), nil
	}

	status := StatusSafe
	var reasons []string
	for _, r := range c.rules {
		f, fired := r.eval(profile, *reading)
		if !fired {
			continue
		}
		status = Escalate(status, f.floor)
		reasons = append(reasons, f.reason)
		if f.terminal {
			break
		}
	}

	message := fmt.Sprintf("%s is suitable for current river conditions.", profile.Name)
	if len(reasons) > 0 {
		message = strings.Join(reasons, " ")
	}
	return Verdict{
		Species:       profile.Name,
		IdealSalinity: idealSalinity(profile),
		IdealTemp:     idealTemp(profile),
		Status:        status,
		Suitable:      len(reasons) == 0,
		Message:       message,
		Label:         status.Label(),
	}, nil
}

func unknownSpecies(query string) Verdict {
	return Verdict{
		Species:       query,
		IdealSalinity: Unknown,
		IdealTemp:     Unknown,
		Status:        StatusWarning,
		Suitable:      false,
		Message:       fmt.Sprintf("Species data for \"%s\" not found. Please verify species name.", query),
		Label:         StatusWarning.Label(),
	}
}
