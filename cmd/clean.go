package cmd

import (
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/quickclean/internal/cleaner"
	"github.com/lakshaymaurya-felt/quickclean/internal/cleanview"
	"github.com/lakshaymaurya-felt/quickclean/internal/config"
	"github.com/lakshaymaurya-felt/quickclean/internal/paths"
	"github.com/lakshaymaurya-felt/quickclean/internal/recycle"
	"github.com/lakshaymaurya-felt/quickclean/internal/sysinfo"
	"github.com/lakshaymaurya-felt/quickclean/internal/ui"
)

var (
	cleanSystem     bool
	cleanNoBrowsers bool
	cleanList       bool
	cleanPlain      bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long: "Empty the Recycle Bin and delete temp files, recent items, thumbnail\n" +
		"caches, and browser caches. Reports bytes reclaimed per task.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cleanList {
			return listPlan()
		}
		return runClean()
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanSystem, "system", false, "Also clean the system temp directory (requires admin)")
	cleanCmd.Flags().BoolVar(&cleanNoBrowsers, "no-browsers", false, "Skip all browser caches")
	cleanCmd.Flags().BoolVar(&cleanList, "list", false, "Show the cleanup plan without deleting anything")
	cleanCmd.Flags().BoolVar(&cleanPlain, "plain", false, "Line-based output instead of the interactive view")
}

// buildPlan applies the command flags to the default task list.
func buildPlan() []config.TaskConfig {
	isBrowser := make(map[paths.Category]bool)
	for _, cat := range paths.BrowserCategories() {
		isBrowser[cat] = true
	}

	tasks := config.DefaultTasks()
	for i := range tasks {
		switch {
		case tasks[i].Category == paths.CategorySystemTemp:
			tasks[i].Enabled = cleanSystem
		case cleanNoBrowsers && isBrowser[tasks[i].Category]:
			tasks[i].Enabled = false
		}
	}
	return tasks
}

// listPlan prints the tasks that would run, annotating browser tasks with
// whether that browser appears to have data on disk.
func listPlan() error {
	resolver, err := paths.NewResolver()
	if err != nil {
		return err
	}

	isBrowser := make(map[paths.Category]bool)
	for _, cat := range paths.BrowserCategories() {
		isBrowser[cat] = true
	}

	for _, t := range buildPlan() {
		state := "enabled"
		if !t.Enabled {
			state = "disabled"
		}
		note := ""
		if isBrowser[t.Category] && !resolver.BrowserPresent(t.Category) {
			note = "  (no data found)"
		}
		fmt.Printf("  %-24s %s%s\n", t.Name, state, note)
	}
	return nil
}

func runClean() error {
	engine, err := cleaner.New(buildPlan(), cleaner.Options{
		Bin:    recycle.Bin{},
		Logger: debugLogger(),
	})
	if err != nil {
		return err
	}

	sysRoot := systemRoot()
	freeBefore, beforeErr := sysinfo.FreeSpace(sysRoot)

	if cleanPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
		err = runPlain(engine)
	} else {
		err = runInteractive(engine)
	}
	if err != nil {
		return err
	}

	if freeAfter, afterErr := sysinfo.FreeSpace(sysRoot); beforeErr == nil && afterErr == nil && freeAfter > freeBefore {
		fmt.Printf("Free space on %s: %s (was %s)\n",
			sysRoot, ui.FormatSize(freeAfter), ui.FormatSize(freeBefore))
	}
	return nil
}

// systemRoot returns the system drive root, e.g. "C:\".
func systemRoot() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// runInteractive drives the run through the bubbletea progress view.
func runInteractive(engine *cleaner.Engine) error {
	final, err := tea.NewProgram(cleanview.NewModel(engine)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(cleanview.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// runPlain prints one line per completed task. Ctrl+C cancels cooperatively.
func runPlain(engine *cleaner.Engine) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	go func() {
		<-interrupt
		fmt.Println("cancelling...")
		engine.Cancel()
	}()

	summary, err := engine.Run(func(ev cleaner.ProgressEvent) {
		if ev.Final {
			return
		}
		fmt.Printf("[%d/%d] %s — freed so far: %s\n",
			ev.TaskIndex+1, ev.TaskCount, ev.TaskName, ui.FormatSize(ev.BytesFreedSoFar))
	})
	if err != nil {
		return err
	}

	fmt.Println()
	for _, r := range summary.Results {
		size := ui.FormatSize(r.BytesFreed)
		if r.Estimated {
			size = ui.IconApprox + size
		}
		line := fmt.Sprintf("  %-24s %s (%d items", r.Task, size, r.ItemsDeleted)
		if r.ItemsFailed > 0 {
			line += fmt.Sprintf(", %d failed", r.ItemsFailed)
		}
		fmt.Println(line + ")")
	}
	if summary.Cancelled {
		fmt.Printf("\nCancelled — freed %s before stopping\n", ui.FormatSize(summary.TotalBytesFreed))
		return nil
	}
	fmt.Printf("\nDone — freed %s\n", ui.FormatSize(summary.TotalBytesFreed))
	return nil
}
