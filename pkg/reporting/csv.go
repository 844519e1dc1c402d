package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// WriteFaultTable writes the Fault Table (§6): one row per enumerated,
// classified fault pattern, before any solver has run.
func WriteFaultTable(path string, rows []FaultRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fault table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"bumps", "tag", "chains"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{joinSemicolon(r.Bumps), r.Tag, joinSemicolon(r.Chains)}); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteReparabilityTable writes the Reparability Table (§6): the Fault
// Table extended with the Capacity Solver's resolved tag.
func WriteReparabilityTable(path string, rows []ReparabilityRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create reparability table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"bumps", "tag", "chains", "resolved"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{joinSemicolon(r.Bumps), r.Tag, joinSemicolon(r.Chains), r.Resolved}); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteRepairSolutionsTable writes the Repair Solutions Table (§6): the
// Reparability Table extended with the concrete per-chain multiplexer
// assignment, when one was found.
func WriteRepairSolutionsTable(path string, rows []RepairSolutionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create repair solutions table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"bumps", "tag", "chains", "resolved", "assignments"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			joinSemicolon(r.Bumps), r.Tag, joinSemicolon(r.Chains), r.Resolved, formatAssignments(r.Assignments),
		}); err != nil {
			return err
		}
	}
	return w.Error()
}

func joinSemicolon(items []string) string {
	return strings.Join(items, ";")
}

// formatAssignments renders a chain->mux/sel assignment map as
// "chainA:mux0=0,mux1=1|chainB:mux2=0", chains sorted for determinism.
func formatAssignments(assignments map[string][]MuxAssignment) string {
	if len(assignments) == 0 {
		return ""
	}
	chains := make([]string, 0, len(assignments))
	for c := range assignments {
		chains = append(chains, c)
	}
	sort.Strings(chains)

	parts := make([]string, 0, len(chains))
	for _, c := range chains {
		settings := make([]string, 0, len(assignments[c]))
		for _, a := range assignments[c] {
			settings = append(settings, fmt.Sprintf("%s=%s", a.Mux, a.Sel))
		}
		parts = append(parts, fmt.Sprintf("%s:%s", c, strings.Join(settings, ",")))
	}
	return strings.Join(parts, "|")
}
