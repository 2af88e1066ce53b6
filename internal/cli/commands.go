package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/shepherd/internal/attendance"
	"github.com/mmynk/shepherd/internal/dedupe"
	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
)

func newAlertsCmd(v *viper.Viper) *cobra.Command {
	var (
		groupID string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List members with consecutive absences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			people, reports, err := storage.LoadSnapshot(cmd.Context(), store, groupID)
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}
			alerts := attendance.ComputeAlerts(people, reports)

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, alerts)
			}
			if len(alerts) == 0 {
				fmt.Fprintln(out, "No attendance alerts.")
				return nil
			}

			table := pterm.TableData{{"SEVERITY", "ABSENCES", "NAME", "GROUP", "PERSON"}}
			for _, a := range alerts {
				table = append(table, []string{
					string(a.Severity), strconv.Itoa(a.ConsecutiveAbsences), a.DisplayName, a.GroupID, a.PersonID,
				})
			}
			if err := renderTable(out, table); err != nil {
				return err
			}
			summary := attendance.Summarize(alerts)
			fmt.Fprintf(out, "\n%d alert(s), %d inactive\n", summary.Alert, summary.Inactive)
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "only this group's reports")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newDuplicatesCmd(v *viper.Viper) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Scan every person record for probable duplicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if threshold <= 0 || threshold > 1 {
				return fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
			}

			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			people, err := store.ListPeople(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			pairs := dedupe.Scan(people, threshold)
			if len(pairs) == 0 {
				fmt.Fprintf(out, "No probable duplicates among %d people.\n", len(people))
				return nil
			}

			table := pterm.TableData{{"EXISTING", "DUPLICATE", "MATCHED ON"}}
			for _, p := range pairs {
				reasons := make([]string, len(p.Reasons))
				for i, r := range p.Reasons {
					reasons[i] = string(r)
				}
				table = append(table, []string{
					fmt.Sprintf("%s (%s)", p.Existing.Name, p.Existing.ID),
					fmt.Sprintf("%s (%s)", p.Duplicate.Name, p.Duplicate.ID),
					strings.Join(reasons, ", "),
				})
			}
			return renderTable(out, table)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", dedupe.DefaultThreshold, "name similarity required, between 0 and 1")
	return cmd
}

func newMembershipCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "membership PERSON_ID GROUP_ID DATE",
		Short: "Report whether a person belonged to a group on a date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, groupID := args[0], args[1]
			date, err := models.ParseDate(args[2])
			if err != nil || date.IsZero() {
				return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[2])
			}

			store, err := openStore(v)
			if err != nil {
				return err
			}
			defer store.Close()

			person, err := store.GetPerson(cmd.Context(), personID)
			if err != nil {
				return err
			}

			verdict := "was not"
			if membership.WasMemberAt(*person, groupID, date) {
				verdict = "was"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s a member of %s on %s\n",
				attendance.DisplayName(*person), verdict, groupID, date)
			return nil
		},
	}
}

func renderTable(w io.Writer, data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
