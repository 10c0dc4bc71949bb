package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"wraith/internal/config"
	"wraith/internal/dashboard"
	"wraith/internal/domain"
	"wraith/internal/feed"
	"wraith/internal/hint"
	"wraith/internal/i18n"
	"wraith/internal/store"
	"wraith/internal/util"
)

// Styles.
var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	tabActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("6")).Padding(0, 1)
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	buyStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	sellStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	neutralStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	gainStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	symbolStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)
	hintPulseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	disconnectStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
)

func directionStyle(d domain.SignalDirection) lipgloss.Style {
	switch d {
	case domain.SignalBuy:
		return buyStyle
	case domain.SignalSell:
		return sellStyle
	default:
		return neutralStyle
	}
}

// Tabs.
const (
	tabSignals = iota
	tabPortfolio
	tabQuotes
	tabCount
)

const lastTabKey = "wraith.ui.tab"

// hintSpec declares one onboarding hint an indicator mounts.
type hintSpec struct {
	id       string
	priority int
	msgKey   string
}

// Hints mounted for the whole life of the program, and per tab. A tab's
// hints are registered when the tab becomes visible and unregistered when
// the user navigates away, mirroring indicator mount state.
var (
	globalHints = []hintSpec{
		{id: "hint-tabs", priority: 1, msgKey: "hint.tabs"},
		{id: "hint-dismiss", priority: 2, msgKey: "hint.dismiss"},
	}
	tabHints = map[int][]hintSpec{
		tabSignals: {{id: "hint-signal-detail", priority: 5, msgKey: "hint.signal_detail"}},
		tabQuotes:  {{id: "hint-watchlist", priority: 10, msgKey: "hint.watchlist"}},
	}
)

// Messages.
type tickMsg time.Time
type feedEventMsg feed.Event
type hintChangeMsg hint.Change

func tickCmd() tea.Cmd {
	return tea.Tick(600*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForFeed(ch <-chan feed.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return feedEventMsg(e)
	}
}

func waitForHint(ch <-chan hint.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return hintChangeMsg(c)
	}
}

type model struct {
	feedModel *feed.Model
	hints     *hint.Controller
	session   *store.SessionStore
	catalog   *i18n.Catalog
	logger    *slog.Logger
	cancel    context.CancelFunc

	feedCh <-chan feed.Event
	hintCh <-chan hint.Change

	activeTab     int
	selectedSig   int
	pulseOn       bool
	now           time.Time
	viewport      viewport.Model
	ready         bool
	width, height int
}

func initialModel(
	fm *feed.Model,
	hints *hint.Controller,
	session *store.SessionStore,
	catalog *i18n.Catalog,
	logger *slog.Logger,
	cancel context.CancelFunc,
	feedCh <-chan feed.Event,
	hintCh <-chan hint.Change,
	startTab int,
) model {
	return model{
		feedModel: fm,
		hints:     hints,
		session:   session,
		catalog:   catalog,
		logger:    logger,
		cancel:    cancel,
		feedCh:    feedCh,
		hintCh:    hintCh,
		activeTab: startTab,
		now:       time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	// Mount the always-present indicators, then the starting tab's.
	for _, h := range globalHints {
		m.hints.Register(h.id, h.priority)
	}
	for _, h := range tabHints[m.activeTab] {
		m.hints.Register(h.id, h.priority)
	}
	return tea.Batch(tickCmd(), waitForFeed(m.feedCh), waitForHint(m.hintCh))
}

// switchTab unmounts the old tab's hint indicators and mounts the new ones.
func (m *model) switchTab(delta int) {
	old := m.activeTab
	m.activeTab = (m.activeTab + delta + tabCount) % tabCount
	for _, h := range tabHints[old] {
		m.hints.Unregister(h.id)
	}
	for _, h := range tabHints[m.activeTab] {
		m.hints.Register(h.id, h.priority)
	}
	m.selectedSig = 0
	if err := m.session.Set(lastTabKey, fmt.Sprintf("%d", m.activeTab)); err != nil {
		m.logger.Warn("saving last tab", "error", err)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "tab":
			m.switchTab(1)
			m.viewport.SetContent(m.renderContent())
			return m, nil
		case "shift+tab":
			m.switchTab(-1)
			m.viewport.SetContent(m.renderContent())
			return m, nil
		case "x":
			// Dismiss whatever hint is pulsing right now.
			if id, ok := m.hints.ActiveHint(); ok {
				m.hints.Dismiss(id)
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil
		case "up", "down":
			if m.activeTab == tabSignals {
				n := len(m.feedModel.Signals())
				if msg.String() == "up" && m.selectedSig > 0 {
					m.selectedSig--
				}
				if msg.String() == "down" && m.selectedSig < n-1 {
					m.selectedSig++
				}
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tickMsg:
		m.pulseOn = !m.pulseOn
		m.now = time.Time(msg)
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, tickCmd()

	case feedEventMsg:
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, waitForFeed(m.feedCh)

	case hintChangeMsg:
		m.logger.Debug("active hint changed", "id", msg.Active)
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, waitForHint(m.hintCh)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func (m model) View() string {
	if !m.ready {
		return m.catalog.T("feed.connecting")
	}

	tabs := []string{
		m.catalog.T("tab.signals"),
		m.catalog.T("tab.portfolio"),
		m.catalog.T("tab.quotes"),
	}
	var tabBar strings.Builder
	for i, label := range tabs {
		if i == m.activeTab {
			tabBar.WriteString(tabActiveStyle.Render(label))
		} else {
			tabBar.WriteString(tabStyle.Render(label))
		}
	}
	status := ""
	if !m.feedModel.Connected() {
		status = "  " + disconnectStyle.Render(m.catalog.T("feed.disconnected"))
	}
	header := headerStyle.Render(dashboard.PadOrTrunc(" wraith ", 9)) + tabBar.String() + status

	footer := m.renderFooter()

	return header + "\n\n" + m.viewport.View() + "\n" + footer
}

// renderFooter shows key help plus the currently active onboarding hint,
// pulsing on the tick so the eye finds it.
func (m model) renderFooter() string {
	help := fmt.Sprintf(" %s  %s  %s",
		m.catalog.T("footer.quit"),
		m.catalog.T("footer.next_tab"),
		m.catalog.T("footer.dismiss_hint"),
	)

	hintText := ""
	if id, ok := m.hints.ActiveHint(); ok {
		if key := hintMsgKey(id); key != "" {
			style := hintStyle
			if m.pulseOn {
				style = hintPulseStyle
			}
			hintText = style.Render("● " + m.catalog.T(key))
		}
	}

	gap := m.width - lipgloss.Width(help) - lipgloss.Width(hintText)
	if gap < 1 {
		gap = 1
	}
	return footerStyle.Render(dashboard.PadOrTrunc(help, m.width)) + "\n" +
		hintText + strings.Repeat(" ", gap-1)
}

// hintMsgKey maps a hint id back to its catalog key.
func hintMsgKey(id string) string {
	for _, h := range globalHints {
		if h.id == id {
			return h.msgKey
		}
	}
	for _, specs := range tabHints {
		for _, h := range specs {
			if h.id == id {
				return h.msgKey
			}
		}
	}
	return ""
}

func (m model) renderContent() string {
	switch m.activeTab {
	case tabSignals:
		return m.renderSignals()
	case tabPortfolio:
		return m.renderPortfolio()
	case tabQuotes:
		return m.renderQuotes()
	}
	return ""
}

func (m model) renderSignals() string {
	signals := dashboard.TopByConfidence(m.feedModel.Signals(), 0)
	if len(signals) == 0 {
		return dimStyle.Render("  " + m.catalog.T("signals.empty"))
	}

	counts := dashboard.CountByDirection(signals)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n\n",
		buyStyle.Render("buy"), dashboard.FormatInt(counts.Buy),
		sellStyle.Render("sell"), dashboard.FormatInt(counts.Sell),
		neutralStyle.Render("neutral"), dashboard.FormatInt(counts.Neutral),
	))

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-8s %-8s %-12s %-10s %-6s %s\n",
		"SYMBOL", "SIDE", "CONFIDENCE", "PRICE", "AGE", "STRATEGY")))

	for i, s := range signals {
		prefix := "  "
		if i == m.selectedSig {
			prefix = "> "
		}
		conf := dashboard.Gauge(s.Confidence, 12)
		b.WriteString(fmt.Sprintf("%s%s %s %s %-10s %-6s %s\n",
			prefix,
			symbolStyle.Render(dashboard.PadOrTrunc(s.Symbol, 8)),
			directionStyle(s.Direction).Render(dashboard.PadOrTrunc(string(s.Direction), 8)),
			conf,
			dashboard.FormatPrice(s.Price),
			dashboard.FormatAge(s.CreatedAt, m.now),
			dimStyle.Render(s.Strategy),
		))
	}
	return b.String()
}

func (m model) renderPortfolio() string {
	p, ok := m.feedModel.Portfolio()
	if !ok {
		return dimStyle.Render("  " + m.catalog.T("portfolio.empty"))
	}

	card := func(titleKey string, value string) string {
		return cardTitleStyle.Render(m.catalog.T(titleKey)) + " " + cardValueStyle.Render(value)
	}
	pnlStyle := gainStyle
	if p.DayPnL < 0 {
		pnlStyle = lossStyle
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s    %s    %s %s\n\n",
		card("card.equity", dashboard.FormatMoney(p.Equity)),
		card("card.cash", dashboard.FormatMoney(p.Cash)),
		cardTitleStyle.Render(m.catalog.T("card.day_pnl")),
		pnlStyle.Render(dashboard.FormatMoney(p.DayPnL)+" "+dashboard.FormatPct(p.DayPnLPct)),
	))

	if len(p.Positions) == 0 {
		b.WriteString(dimStyle.Render("  " + m.catalog.T("portfolio.empty")))
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-8s %10s %10s %10s %9s\n",
		"SYMBOL", "QTY", "ENTRY", "VALUE", "PNL")))
	for _, pos := range p.Positions {
		s := gainStyle
		if pos.UnrealizedPnL() < 0 {
			s = lossStyle
		}
		b.WriteString(fmt.Sprintf("  %s %10.2f %10s %10s %s\n",
			symbolStyle.Render(dashboard.PadOrTrunc(pos.Symbol, 8)),
			pos.Qty,
			dashboard.FormatPrice(pos.AvgEntry),
			dashboard.FormatMoney(pos.MarketValue()),
			s.Render(fmt.Sprintf("%9s", dashboard.FormatPct(pos.UnrealizedPnLPct()))),
		))
	}
	return b.String()
}

func (m model) renderQuotes() string {
	quotes := m.feedModel.Quotes()
	if len(quotes) == 0 {
		return dimStyle.Render("  " + m.catalog.T("quotes.empty"))
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-8s %10s %9s %-6s\n",
		"SYMBOL", "PRICE", "CHANGE", "AGE")))
	for _, q := range quotes {
		s := gainStyle
		if q.ChangePct() < 0 {
			s = lossStyle
		}
		b.WriteString(fmt.Sprintf("  %s %10s %s %-6s\n",
			symbolStyle.Render(dashboard.PadOrTrunc(q.Symbol, 8)),
			dashboard.FormatPrice(q.Price),
			s.Render(fmt.Sprintf("%9s", dashboard.FormatPct(q.ChangePct()))),
			dashboard.FormatAge(q.Timestamp, m.now),
		))
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

func main() {
	_ = godotenv.Load()

	cfgPath := "config/wraith.yaml"
	if p := os.Getenv("WRAITH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger := util.NewLogger(util.OpenLogFile(cfg.Logging.File), cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	catalog, err := i18n.Load("locales", cfg.UI.Locale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading locale catalogs: %v\n", err)
		os.Exit(1)
	}

	session, err := store.OpenSession(cfg.Storage.SessionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening session store: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	hints := hint.NewController(session, logger)

	fm := feed.NewModel()
	client := feed.NewClient(cfg.Backend.BaseURL)
	poller := feed.NewPoller(client, fm, cfg.UI.Watchlist,
		time.Duration(cfg.Backend.PollSeconds)*time.Second, cfg.Backend.RateLimitPerMin, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("poller stopped", "error", err)
		}
	}()
	if cfg.Backend.StreamURL != "" {
		stream := feed.NewStream(cfg.Backend.StreamURL, fm, logger)
		go func() {
			if err := stream.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("stream stopped", "error", err)
			}
		}()
	}

	// Optional direct market-data quotes when the backend has none.
	if cfg.Alpaca.APIKey != "" && len(cfg.UI.Watchlist) > 0 {
		src := feed.NewAlpacaSource(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)
		interval := time.Duration(cfg.Backend.PollSeconds) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				quotes, err := src.GetQuotes(ctx, cfg.UI.Watchlist)
				if err != nil {
					logger.Warn("alpaca quotes", "error", err)
				}
				for _, q := range quotes {
					fm.SetQuote(q)
				}
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()
	}

	startTab := tabSignals
	if v, err := session.Get(lastTabKey); err == nil && v != "" {
		if n, convErr := fmt.Sscanf(v, "%d", &startTab); convErr != nil || n != 1 || startTab < 0 || startTab >= tabCount {
			startTab = tabSignals
		}
	}

	feedSub, feedCh := fm.Subscribe(256)
	defer fm.Unsubscribe(feedSub)
	hintSub, hintCh := hints.Subscribe(16)
	defer hints.Unsubscribe(hintSub)

	p := tea.NewProgram(
		initialModel(fm, hints, session, catalog, logger, cancel, feedCh, hintCh, startTab),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
