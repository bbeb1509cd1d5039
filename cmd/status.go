package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/quickclean/internal/sysinfo"
	"github.com/lakshaymaurya-felt/quickclean/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show disk usage",
	Long:  "Report the Windows version and free space on each fixed volume.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sysinfo.WindowsVersionString())
		fmt.Println()

		vols, err := sysinfo.Volumes()
		if err != nil {
			return err
		}
		for _, v := range vols {
			label := v.Label
			if label == "" {
				label = "Local Disk"
			}
			fmt.Printf("  %s %-16s %s free of %s  (%.0f%% used)\n",
				v.DeviceID, label, ui.FormatSize(v.Free), ui.FormatSize(v.Total), v.UsedPercent)
		}
		return nil
	},
}
