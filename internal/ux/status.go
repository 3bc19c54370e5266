package ux

import (
	"fmt"

	"github.com/jorge-barreto/guidebook/internal/state"
)

// RenderStatus prints the last build manifest with its step timings.
func RenderStatus(st *state.State, timing *state.Timing) {
	if st == nil {
		fmt.Fprintf(Out, "%s\n", StyleDim.Render("No builds yet."))
		Hint("Build", "guidebook build")
		return
	}

	status := st.Status
	switch st.Status {
	case state.StatusCompleted:
		status = StyleSuccess.Bold(true).Render(st.Status)
	case state.StatusFailed, state.StatusInterrupted:
		status = StyleError.Bold(true).Render(st.Status)
	}

	fmt.Fprintf(Out, "%s   %s\n", StyleBold.Render("Build:"), st.BuildID)
	fmt.Fprintf(Out, "%s  %s", StyleBold.Render("Status:"), status)
	if st.Step != "" && st.Status != state.StatusCompleted {
		fmt.Fprintf(Out, " (at %s)", st.Step)
	}
	fmt.Fprintln(Out)
	fmt.Fprintf(Out, "%s  %s (%s)\n", StyleBold.Render("Output:"), st.Output, st.Format)
	fmt.Fprintf(Out, "%s  %d\n", StyleBold.Render("Topics:"), st.TopicCount)
	if st.SHA256 != "" {
		fmt.Fprintf(Out, "%s  %s\n", StyleBold.Render("SHA256:"), StyleDim.Render(st.SHA256))
	}
	fmt.Fprintf(Out, "%s %s\n", StyleBold.Render("Started:"), st.Started.Local().Format("2006-01-02 15:04:05"))
	if st.Error != "" {
		fmt.Fprintf(Out, "%s   %s\n", StyleBold.Render("Error:"), StyleError.Render(st.Error))
	}

	if timing != nil && timing.BuildID == st.BuildID && len(timing.Entries) > 0 {
		fmt.Fprintf(Out, "\n%s\n", StyleBold.Render("Steps:"))
		for i, e := range timing.Entries {
			dur := e.Duration
			if dur == "" {
				dur = StyleError.Render("did not finish")
			}
			fmt.Fprintf(Out, "  %s  %-12s %s\n", StyleDim.Render(fmt.Sprintf("%d", i+1)), e.Step, dur)
		}
	}
	fmt.Fprintln(Out)
}
