// Package cmd 提供 mdkloc 的命令行入口与参数编排。
package cmd

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mdkloc/internal/languages"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身就是扫描入口：mdkloc [path]，path 默认为当前目录。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	options := &scanOptions{}

	rootCmd := &cobra.Command{
		Use:   "mdkloc [path]",
		Short: "Source code analyser for multiple programming languages",
		Long: "mdkloc 按语言统计源代码的 code/comment/blank/mixed 行数，\n" +
			"支持注释感知的多语言解析、主线/测试角色拆分与 JSON/YAML 导出。",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return runScan(cmd, registry, options, version, target)
		},
	}

	flags := rootCmd.Flags()
	// 兼容下划线拼写，--max_entries 与 --max-entries 等价。
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	flags.StringArrayVarP(&options.ignore, "ignore", "i", nil, "追加忽略的目录，可多次指定，按路径尾部整段匹配")
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "输出每个文件的统计明细")
	flags.IntVarP(&options.maxEntries, "max-entries", "m", 1_000_000, "目录树中允许的最大文件数")
	flags.IntVarP(&options.maxDepth, "max-depth", "d", 100, "目录递归的最大深度")
	flags.BoolVarP(&options.nonRecursive, "non-recursive", "n", false, "只扫描第一层目录")
	flags.StringVarP(&options.filespec, "filespec", "f", "", "文件名或相对路径的 glob 过滤模式")
	flags.BoolVarP(&options.roleBreakdown, "role-breakdown", "r", false, "输出主线/测试角色拆分")
	flags.BoolVarP(&options.listLanguages, "languages", "l", false, "列出支持的语言后退出")
	flags.IntVar(&options.workers, "workers", runtime.NumCPU(), "并发分析的 worker 数量")
	flags.StringVar(&options.format, "format", "table", "输出格式: table、json 或 yaml")
	flags.StringVar(&options.output, "output", "", "json/yaml 报告的导出文件路径")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguagesCmd(registry))

	return rootCmd
}
