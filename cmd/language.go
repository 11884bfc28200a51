package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mdkloc/internal/languages"
	"mdkloc/internal/report"
)

// newLanguagesCmd 创建 languages 子命令。
// 输出与根命令的 -l 标志相同的语言清单。
func newLanguagesCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "列出支持的语言及文件后缀",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), report.BuildLanguagesListing(registry))
			return err
		},
	}
}
