package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "github.com/t3mr0i/video-game-clicker-sub001/internal/cli"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v <= min {
			printWarn(fmt.Sprintf("Value must be > %.2f", min))
			continue
		}
		return v, nil
	}
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func unlockedGenres(w game.World) []string {
	var out []string
	for _, g := range w.Genres {
		if g.Unlocked {
			out = append(out, g.ID)
		}
	}
	if len(out) == 0 {
		return []string{"action"}
	}
	return out
}

func unlockedPlatforms(w game.World) []string {
	var out []string
	for _, p := range w.Platforms {
		if p.Unlocked {
			out = append(out, p.ID)
		}
	}
	if len(out) == 0 {
		return []string{"pc"}
	}
	return out
}

func renderSummary(w game.World) {
	fmt.Printf("%s  cash %s  net worth %s  morale %.0f  reputation %.0f\n",
		accent.Sprint(w.CurrentDate.String()),
		formatMoney(w.Money),
		formatMoney(w.NetWorth()),
		w.Morale,
		w.Reputation,
	)
}

func renderWorld(w game.World) {
	accent.Println("\n== STUDIO ==")
	renderSummary(w)
	fmt.Printf("Level %d  speed %gx  employees %d  shipped %d  revenue %s\n",
		w.StudioLevel, w.GameSpeed, len(w.Employees), w.Stats.TotalProjectsCompleted, formatMoney(w.Stats.TotalRevenue))
	renderProjects(w)
	renderEmployees(w)
	renderPortfolio(w)
	if n := len(w.Notifications); n > 0 {
		printInfo(fmt.Sprintf("%d unread notification(s). Run `studio notify`.", n))
	}
	fmt.Println()
}

func renderProjects(w game.World) {
	accent.Println("\nProjects")
	if len(w.Projects) == 0 {
		printInfo("No projects in development.")
		return
	}
	fmt.Printf("%-36s %-20s %-10s %-8s %12s %8s\n", "ID", "NAME", "GENRE", "SIZE", "PROGRESS", "QUALITY")
	for _, p := range w.Projects {
		fmt.Printf("%-36s %-20s %-10s %-8s %12s %8.1f\n",
			p.ID,
			truncate(p.Name, 20),
			p.Genre,
			p.Size,
			fmt.Sprintf("%.0f/%.0f", p.Progress, p.RequiredPoints),
			p.Quality,
		)
	}
}

func renderEmployees(w game.World) {
	accent.Println("\nStaff")
	if len(w.Employees) == 0 {
		printInfo("Nobody hired yet. Run `studio hire`.")
		return
	}
	fmt.Printf("%-36s %-18s %-11s %8s %10s  %s\n", "ID", "NAME", "ROLE", "SKILL", "SALARY", "PROJECT")
	for _, e := range w.Employees {
		project := "-"
		if p, ok := w.AssignedProject(e); ok {
			project = truncate(p.Name, 20)
		}
		fmt.Printf("%-36s %-18s %-11s %8.1f %10s  %s\n",
			e.ID, truncate(e.Name, 18), e.Role, e.AverageSkill(), formatMoney(e.Salary), project)
	}
}

func renderCandidates(candidates []game.Candidate) {
	accent.Println("\n== CANDIDATES ==")
	fmt.Printf("%-3s %-18s %-11s %-13s %8s %10s %10s\n", "#", "NAME", "ROLE", "TRAIT", "SKILL", "SALARY", "COST")
	for i, c := range candidates {
		fmt.Printf("%-3d %-18s %-11s %-13s %8.1f %10s %10s\n",
			i+1,
			truncate(c.Employee.Name, 18),
			c.Employee.Role,
			c.Employee.Personality,
			c.Employee.AverageSkill(),
			formatMoney(c.Employee.Salary),
			formatMoney(c.HiringCost),
		)
	}
	fmt.Println()
}

func renderStocks(w game.World) {
	accent.Printf("\n== STOCK MARKET (%s) ==\n", w.StockMarket.Regime)
	if !w.StockMarket.Open {
		printWarn("Market is closed.")
	}
	fmt.Printf("%-8s %-20s %-10s %12s %10s %7s\n", "SYMBOL", "NAME", "SECTOR", "PRICE", "CHANGE", "YIELD")
	for _, s := range w.Stocks {
		fmt.Printf("%-8s %-20s %-10s %12s %10s %6.1f%%\n",
			s.ID,
			truncate(s.Name, 20),
			s.Sector,
			formatMoney(s.Price),
			colorizePercent(pctChange(s.PreviousPrice, s.Price)),
			s.DividendYield*100,
		)
	}
	if n := len(w.StockMarket.Events); n > 0 {
		e := w.StockMarket.Events[n-1]
		printInfo(fmt.Sprintf("Latest: %s (%s)", e.Title, e.Date))
	}
}

func renderStockDetail(s game.Stock) {
	accent.Printf("\n== %s (%s) ==\n", s.ID, s.Name)
	fmt.Printf("Sector: %s\n", s.Sector)
	fmt.Printf("Price: %s (%s)\n", formatMoney(s.Price), colorizePercent(pctChange(s.PreviousPrice, s.Price)))
	fmt.Printf("Anchor: %s  Volatility: %.3f  Yield: %.1f%%\n", formatMoney(s.AnchorPrice), s.Volatility, s.DividendYield*100)
	if len(s.History) > 1 {
		oldest := s.History[0]
		fmt.Printf("Trend over %d ticks: %s\n", len(s.History), colorizeMoney(s.Price-oldest))
		start := max(0, len(s.History)-8)
		parts := make([]string, 0, len(s.History)-start)
		for _, p := range s.History[start:] {
			parts = append(parts, formatMoney(p))
		}
		fmt.Printf("Recent: %s\n", strings.Join(parts, " "))
	}
	fmt.Println()
}

func renderPortfolio(w game.World) {
	p := w.Portfolio
	accent.Println("\nPortfolio")
	if len(p.Holdings) == 0 {
		printInfo("No holdings.")
	} else {
		fmt.Printf("%-8s %10s %12s %12s %12s\n", "SYMBOL", "SHARES", "AVG COST", "PRICE", "P/L")
		for _, h := range p.Holdings {
			price := h.AveragePurchasePrice
			if s, ok := w.FindStock(h.StockID); ok {
				price = s.Price
			}
			fmt.Printf("%-8s %10g %12s %12s %12s\n",
				h.StockID,
				h.Quantity,
				formatMoney(h.AveragePurchasePrice),
				formatMoney(price),
				colorizeMoney((price-h.AveragePurchasePrice)*h.Quantity),
			)
		}
	}
	fmt.Printf("Invested %s  realized %s  dividends %s\n",
		formatMoney(p.TotalInvested), colorizeMoney(p.RealizedGainLoss), formatMoney(p.TotalDividendsReceived))
	if len(p.Watchlist) > 0 {
		fmt.Printf("Watching: %s\n", strings.Join(p.Watchlist, ", "))
	}
	for _, a := range p.PriceAlerts {
		fmt.Printf("Alert %s: %s %s %s\n", a.ID, a.StockID, a.Direction, formatMoney(a.TargetPrice))
	}
}

func renderTrade(side string, s game.Stock, qty, before float64, after game.World) {
	if after.Money == before {
		printWarn(fmt.Sprintf("%s %g %s was not filled.", strings.ToUpper(side), qty, s.ID))
		return
	}
	printSuccess(fmt.Sprintf("%s %g %s @ %s", strings.ToUpper(side), qty, s.ID, formatMoney(s.Price)))
	fmt.Printf("Cash: %s -> %s (%s)\n", formatMoney(before), formatMoney(after.Money), colorizeMoney(after.Money-before))
}

func renderNotifications(w game.World) {
	accent.Println("\n== INBOX ==")
	if len(w.Notifications) == 0 {
		printInfo("No notifications.")
		return
	}
	for i := len(w.Notifications) - 1; i >= 0; i-- {
		n := w.Notifications[i]
		at := time.UnixMilli(n.Timestamp).Local().Format("2006-01-02 15:04")
		fmt.Printf("%s  %-11s %s\n", at, n.Kind, accent.Sprint(n.Title))
		if n.Message != "" {
			fmt.Printf("    %s\n", n.Message)
		}
		fmt.Printf("    id %s\n", n.ID)
	}
}

func renderAchievements(w game.World, pending []game.Achievement) {
	accent.Println("\n== ACHIEVEMENTS ==")
	for _, r := range game.AchievementRules() {
		a := r.Achievement
		mark := neutral.Sprint("[ ]")
		if w.HasAchievement(a.ID) {
			mark = success.Sprint("[x]")
		}
		fmt.Printf("%s %-16s %-40s %10s\n", mark, a.Title, a.Description, formatMoney(a.Reward))
	}
	if len(pending) > 0 {
		printWarn(fmt.Sprintf("%d achievement(s) unlock on the next tick.", len(pending)))
	}
}

func renderActionTypes(types []cl.ActionType) {
	accent.Println("\n== ACTIONS ==")
	for _, t := range types {
		fmt.Printf("%-24s %s\n", t.Type, strings.Join(t.Domains, ", "))
	}
}

func renderJournal(actions []game.Action, offset int) error {
	accent.Println("\n== JOURNAL ==")
	if len(actions) == 0 {
		printInfo("Journal is empty.")
		return nil
	}
	for i, a := range actions {
		raw, err := json.Marshal(a.Payload)
		if err != nil {
			return err
		}
		fmt.Printf("%5d  %-24s %s\n", offset+i, a.Type, truncate(string(raw), 80))
	}
	return nil
}

func renderReplay(n int, rebuilt, live game.World, consistent bool) {
	accent.Printf("\nReplayed %d action(s)\n", n)
	fmt.Printf("%-10s %14s %14s\n", "", "REPLAYED", "LIVE")
	fmt.Printf("%-10s %14s %14s\n", "date", rebuilt.CurrentDate.String(), live.CurrentDate.String())
	fmt.Printf("%-10s %14s %14s\n", "cash", formatMoney(rebuilt.Money), formatMoney(live.Money))
	fmt.Printf("%-10s %14s %14s\n", "net worth", formatMoney(rebuilt.NetWorth()), formatMoney(live.NetWorth()))
	if consistent {
		printSuccess("Server snapshot matches its journal.")
	} else {
		printError("Server snapshot diverges from its journal.")
	}
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

func colorizeMoney(v float64) string {
	text := signedMoney(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

// formatMoney renders v with two decimals and thousands separators.
func formatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + comma(whole) + "." + frac
}

func signedMoney(v float64) string {
	if v > 0 {
		return "+" + formatMoney(v)
	}
	return formatMoney(v)
}

func comma(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		b.WriteByte(',')
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
