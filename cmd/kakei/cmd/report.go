package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mnakagawa/kakei/internal/kakeibo"
)

var (
	reportDir     string
	reportMonth   string
	reportGroupBy string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize one month's budget records",
	Long: `report loads record<YYYYMM>.csv (or .xlsx) from the records
directory, splits the rows into income and expenses, and sums the
amounts grouped by the chosen column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		month := reportMonth
		if month == "" {
			month = time.Now().Format("200601")
		}

		records, err := kakeibo.Load(reportDir, month)
		if err != nil {
			return err
		}
		summary, err := kakeibo.Summarize(records, reportGroupBy)
		if err != nil {
			return err
		}

		renderFlow(fmt.Sprintf("収入 - %s別", summary.GroupBy), summary.Income)
		renderFlow(fmt.Sprintf("支出 - %s別", summary.GroupBy), summary.Expense)
		renderTotals(summary)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDir, "dir", "./records", "directory holding recordYYYYMM files")
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "month to summarize as YYYYMM (default: current month)")
	reportCmd.Flags().StringVar(&reportGroupBy, "group-by", "分類", "column to group amounts by")
}

func renderFlow(title string, flow kakeibo.FlowSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"項目", "金額", "件数"})
	for _, g := range flow.Groups {
		t.AppendRow(table.Row{g.Key, yen(g.Amount), g.Count})
	}
	t.AppendFooter(table.Row{"合計", yen(flow.Total), ""})
	t.Render()

	if flow.GroupCount() > 0 {
		fmt.Printf("項目数: %d  平均: ¥%.0f\n\n", flow.GroupCount(), flow.Mean())
	} else {
		fmt.Println("データがありません")
		fmt.Println()
	}
}

func renderTotals(s *kakeibo.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("総合")
	t.AppendRow(table.Row{"総収入", yen(s.Income.Total)})
	t.AppendRow(table.Row{"総支出", yen(s.Expense.Total)})
	t.AppendRow(table.Row{"収支差額", yen(s.Net())})
	t.AppendRow(table.Row{"貯蓄率", fmt.Sprintf("%.1f%%", s.SavingsRate())})
	t.Render()
}

func yen(v int64) string {
	return fmt.Sprintf("¥%d", v)
}
