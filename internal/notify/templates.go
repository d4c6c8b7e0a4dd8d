package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetAlertData fills the budget-alert email.
type BudgetAlertData struct {
	UserName       string
	AccountName    string
	PercentageUsed decimal.Decimal
	BudgetAmount   decimal.Decimal
	TotalExpenses  decimal.Decimal
}

// MonthlyReportData fills the monthly-report email.
type MonthlyReportData struct {
	UserName      string
	Month         string
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	ByCategory    map[string]decimal.Decimal
	Insights      []string
}

var budgetAlertTemplate = template.Must(template.New("budget-alert").Parse(`
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>Budget Alert</h2>
    <p>Hello {{.UserName}},</p>
    <p>You&rsquo;ve used <strong>{{.PercentageUsed}}%</strong> of your monthly budget
       on account <strong>{{.AccountName}}</strong>.</p>
    <table cellpadding="6">
      <tr><td>Budget Amount</td><td><strong>${{.BudgetAmount}}</strong></td></tr>
      <tr><td>Spent So Far</td><td><strong>${{.TotalExpenses}}</strong></td></tr>
      <tr><td>Remaining</td><td><strong>${{.Remaining}}</strong></td></tr>
    </table>
  </body>
</html>`))

var monthlyReportTemplate = template.Must(template.New("monthly-report").Parse(`
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>Monthly Financial Report</h2>
    <p>Hello {{.UserName}},</p>
    <p>Here&rsquo;s your financial summary for {{.Month}}:</p>
    <table cellpadding="6">
      <tr><td>Total Income</td><td><strong>${{.TotalIncome}}</strong></td></tr>
      <tr><td>Total Expenses</td><td><strong>${{.TotalExpenses}}</strong></td></tr>
      <tr><td>Net</td><td><strong>${{.Net}}</strong></td></tr>
    </table>
    {{if .ByCategory}}
    <h3>Expenses by Category</h3>
    <table cellpadding="6">
      {{range $category, $amount := .ByCategory}}
      <tr><td>{{$category}}</td><td>${{$amount}}</td></tr>
      {{end}}
    </table>
    {{end}}
    {{if .Insights}}
    <h3>Finexa Insights</h3>
    <ul>
      {{range .Insights}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
  </body>
</html>`))

// RenderBudgetAlert builds the budget-alert email for a recipient address.
func RenderBudgetAlert(to string, data BudgetAlertData) (Email, error) {
	payload := struct {
		BudgetAlertData
		Remaining decimal.Decimal
	}{
		BudgetAlertData: data,
		Remaining:       data.BudgetAmount.Sub(data.TotalExpenses),
	}
	// Round the headline percentage the way the dashboard shows it.
	payload.PercentageUsed = data.PercentageUsed.Round(1)

	var sb strings.Builder
	if err := budgetAlertTemplate.Execute(&sb, payload); err != nil {
		return Email{}, fmt.Errorf("render budget alert: %w", err)
	}

	return Email{
		To:      to,
		Subject: fmt.Sprintf("Budget Alert for %s", data.AccountName),
		HTML:    sb.String(),
	}, nil
}

// RenderMonthlyReport builds the monthly-report email for a recipient address.
func RenderMonthlyReport(to string, data MonthlyReportData) (Email, error) {
	payload := struct {
		MonthlyReportData
		Net decimal.Decimal
	}{
		MonthlyReportData: data,
		Net:               data.TotalIncome.Sub(data.TotalExpenses),
	}

	var sb strings.Builder
	if err := monthlyReportTemplate.Execute(&sb, payload); err != nil {
		return Email{}, fmt.Errorf("render monthly report: %w", err)
	}

	return Email{
		To:      to,
		Subject: fmt.Sprintf("Your Monthly Financial Report - %s", data.Month),
		HTML:    sb.String(),
	}, nil
}
