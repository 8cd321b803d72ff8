// Package cli — ports.go implements the "portlauncher ports" command.
//
// The ports command shows which ports of the configured range are bound on
// the host right now and which port the next launch would receive. Ports
// assigned by a running "serve" or "tray" instance are reported by that
// instance at GET /api/ports.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/portlauncher/internal/model"
	"github.com/shinji-kodama/portlauncher/internal/port"
)

// NewPortsCommand creates the "ports" cobra command.
func NewPortsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "Show host port usage in the launch range",
		Long: `Probe every port of the launch range on the host and list the ones in use.

The next port reported is the one a fresh launch would receive. It skips
host-bound ports only when probe_host_ports is enabled in the config.

Examples:
  portlauncher ports
  portlauncher ports --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPorts(cmd.OutOrStdout(), port.NewScanner(), cfg.PortStart, cfg.PortEnd, cfg.ProbeHostPorts)
		},
	}

	return cmd
}

// usedPortLister is the part of port.Scanner the ports command needs.
type usedPortLister interface {
	GetUsedPorts(startPort, endPort int) []int
}

// portsResult is the JSON output of the ports command.
type portsResult struct {
	RangeStart int   `json:"rangeStart"`
	RangeEnd   int   `json:"rangeEnd"`
	Used       []int `json:"used"`
	Next       int   `json:"next,omitempty"`
}

// runPorts probes [start, end) with scanner and prints the result.
func runPorts(w io.Writer, scanner usedPortLister, start, end int, skipUsed bool) error {
	used := scanner.GetUsedPorts(start, end)
	VerboseLog("%d ports in use between %d and %d", len(used), start, end-1)

	taken := map[string]int{}
	if skipUsed {
		for _, p := range used {
			taken["host:"+strconv.Itoa(p)] = p
		}
	}
	next, err := port.FindFreePort(taken, start, end)
	if err != nil {
		return model.WrapCLIError(model.ExitPortAllocationFailed,
			fmt.Sprintf("no free port between %d and %d", start, end-1), err)
	}

	res := portsResult{RangeStart: start, RangeEnd: end, Used: used, Next: next}
	if res.Used == nil {
		res.Used = []int{}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "RANGE  %d-%d\n", start, end-1)
	fmt.Fprintf(w, "USED   %s\n", FormatPortsList(used))
	fmt.Fprintf(w, "NEXT   %d\n", next)
	return nil
}

// FormatPortsList converts a slice of ports into a comma-separated string
// sorted numerically. Returns "-" if the slice is empty.
//
// Example:
//
//	[8001, 8000] → "8000,8001"
//	[]           → "-"
func FormatPortsList(ports []int) string {
	if len(ports) == 0 {
		return "-"
	}

	// Sort a copy numerically; lexicographic order would put "10000" before "8000".
	sorted := append([]int(nil), ports...)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, ",")
}

// FormatAssignments renders assignments as "name → port" pairs in port order.
func FormatAssignments(assignments []model.Assignment) string {
	if len(assignments) == 0 {
		return "-"
	}

	sorted := append([]model.Assignment(nil), assignments...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Port < sorted[j].Port })

	parts := make([]string, 0, len(sorted))
	for _, a := range sorted {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}
