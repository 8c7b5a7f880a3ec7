package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// WebServer serves the browser UI and its JSON API
type WebServer struct {
	app    *App
	addr   string
	logger *slog.Logger
}

// NewWebServer creates a new web server instance
func NewWebServer(app *App, addr string) *WebServer {
	return &WebServer{
		app:    app,
		addr:   addr,
		logger: app.Logger,
	}
}

// APICompareRequest is the body of POST /api/compare
type APICompareRequest struct {
	Base      PlanParameters `json:"base"`
	StrategyA StrategyCosts  `json:"strategy_a"`
	StrategyB StrategyCosts  `json:"strategy_b"`
}

// APICalculateResponse is returned by POST /api/calculate
type APICalculateResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Costs   *DerivedCosts `json:"costs,omitempty"`
}

// APICompareResponse is returned by POST /api/compare
type APICompareResponse struct {
	Success bool               `json:"success"`
	Error   string             `json:"error,omitempty"`
	Outcome *ComparisonOutcome `json:"outcome,omitempty"`
	Sign    string             `json:"sign,omitempty"`
}

// APIChartResponse is returned by GET /api/chart
type APIChartResponse struct {
	ID      string        `json:"id,omitempty"`
	Dataset *ChartDataset `json:"dataset,omitempty"`
}

// Routes builds the HTTP handler
func (ws *WebServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", ws.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", ws.handleGetConfig)
		r.Post("/calculate", ws.handleCalculate)
		r.Post("/compare", ws.handleCompare)
		r.Get("/display", ws.handleDisplay)
		r.Get("/chart", ws.handleChart)
		r.Get("/export-pdf/sip", ws.handleExportSIPPDF)
		r.Get("/export-pdf/compare", ws.handleExportComparisonPDF)
		r.Get("/export-html", ws.handleExportHTML)
	})
	return r
}

// listen opens the listener and works out the browser URL
func (ws *WebServer) listen() (net.Listener, string, error) {
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return nil, "", err
	}

	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") || strings.HasPrefix(actualAddr, "[::]:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}
	return listener, url, nil
}

// Start serves until the listener fails, opening the UI in a browser
func (ws *WebServer) Start() error {
	listener, url, err := ws.listen()
	if err != nil {
		return err
	}

	ws.logger.Info("starting web server", "addr", listener.Addr().String(), "url", url)
	go openBrowser(url)

	server := &http.Server{Handler: ws.Routes(), ReadHeaderTimeout: 10 * time.Second}
	return server.Serve(listener)
}

// StartForEmbedded starts the server without blocking or opening a browser.
// The caller stops it with the returned cleanup function.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	listener, url, err := ws.listen()
	if err != nil {
		return "", nil, err
	}

	ws.logger.Info("starting embedded web server", "addr", listener.Addr().String())

	server := &http.Server{Handler: ws.Routes(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			ws.logger.Error("server error", "error", err)
		}
	}()

	cleanup = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
	return url, cleanup, nil
}

func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, webUIHTML)
}

func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ws.app.Config)
}

func (ws *WebServer) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var params PlanParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, APICalculateResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	costs, err := ws.app.Calculator.Calculate(r.Context(), params)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, APICalculateResponse{Error: CalculationFailedNotice})
		return
	}
	writeJSON(w, http.StatusOK, APICalculateResponse{Success: true, Costs: &costs})
}

func (ws *WebServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req APICompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APICompareResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	outcome, err := ws.app.Comparator.Compare(r.Context(), req.Base, req.StrategyA, req.StrategyB)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, APICompareResponse{Error: ComparisonFailedNotice})
		return
	}
	writeJSON(w, http.StatusOK, APICompareResponse{Success: true, Outcome: &outcome, Sign: outcome.Sign.String()})
}

func (ws *WebServer) handleDisplay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ws.app.Snapshot())
}

func (ws *WebServer) handleChart(w http.ResponseWriter, r *http.Request) {
	chart, ok := ws.app.Chart.Current()
	if !ok {
		writeJSON(w, http.StatusOK, APIChartResponse{})
		return
	}
	dataset := chart.Dataset()
	writeJSON(w, http.StatusOK, APIChartResponse{ID: chart.ID(), Dataset: &dataset})
}

func (ws *WebServer) handleExportSIPPDF(w http.ResponseWriter, r *http.Request) {
	snap := ws.app.Board.Snapshot()
	params := ws.app.Config.PlanParameters()
	if snap.Plan != nil {
		params = *snap.Plan
	}

	data, err := GenerateSIPReport(snap, params, ws.app.Config.Display.CurrencyLabel)
	ws.writePDF(w, SIPReportFilename, data, err)
}

func (ws *WebServer) handleExportComparisonPDF(w http.ResponseWriter, r *http.Request) {
	snap := ws.app.Board.Snapshot()
	a, b := ws.app.Config.Strategies()
	inputs := ComparisonInputs{Base: ws.app.Config.PlanParameters(), StrategyA: a, StrategyB: b}
	if snap.Comparison != nil {
		inputs = *snap.Comparison
	}

	data, err := GenerateComparisonReport(snap, inputs, ws.app.Config.Display.CurrencyLabel)
	ws.writePDF(w, ComparisonReportFilename, data, err)
}

func (ws *WebServer) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	var dataset *ChartDataset
	if chart, ok := ws.app.Chart.Current(); ok {
		ds := chart.Dataset()
		dataset = &ds
	}

	data, err := GenerateHTMLReport(ws.app.Board.Snapshot(), dataset, ws.app.Config.Display.CurrencyLabel)
	if err != nil {
		ws.logger.Error("html export failed", "error", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", HTMLReportFilename))
	w.Write(data)
}

func (ws *WebServer) writePDF(w http.ResponseWriter, filename string, data []byte, err error) {
	if err != nil {
		ws.logger.Error("pdf export failed", "file", filename, "error", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// webUIHTML is the embedded web interface
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>WealthLens</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
  body { font-family: system-ui, sans-serif; background: #0f172a; color: #e2e8f0; margin: 0; padding: 24px; }
  h1 { margin-top: 0; }
  .tabs button { background: #1e293b; color: #e2e8f0; border: 0; padding: 8px 16px; cursor: pointer; }
  .tabs button.active { background: #d4af37; color: #0f172a; }
  .tab { display: none; margin-top: 16px; }
  .tab.active { display: block; }
  label { display: block; margin: 6px 0; }
  input { width: 120px; }
  .cards { display: grid; grid-template-columns: repeat(4, 1fr); gap: 12px; margin-top: 16px; }
  .card { background: #1e293b; padding: 12px; border-radius: 8px; }
  .card span { display: block; font-size: 1.3em; margin-top: 4px; }
  .fade-slide { animation: fadeSlide .5s ease; }
  @keyframes fadeSlide { from { opacity: 0; transform: translateY(8px); } to { opacity: 1; transform: none; } }
  .positive { color: #4ade80; }
  .negative { color: #f87171; }
  #notice { color: #f87171; min-height: 1.2em; }
  #chartBox { width: 260px; margin-top: 16px; }
</style>
</head>
<body>
<h1>WealthLens</h1>
<div id="notice"></div>
<div class="tabs">
  <button class="active" data-tab="sipTab">SIP</button>
  <button data-tab="compareTab">Compare</button>
</div>

<div id="sipTab" class="tab active">
  <label>Monthly amount <input id="monthlyAmount" type="number"></label>
  <label>Years <input id="years" type="number"></label>
  <label>Expected return % <input id="expectedReturn" type="number" step="0.1"></label>
  <label>Step-up % <input id="stepUp" type="number" step="0.1"></label>
  <label>Inflation % <input id="inflation" type="number" step="0.1"></label>
  <label>Expense ratio % <input id="expenseRatio" type="number" step="0.01"></label>
  <label>Exit load % <input id="exitLoad" type="number" step="0.01"></label>
  <button id="calculateBtn">Calculate</button>
  <button id="pdfSipBtn">Download PDF</button>
  <button id="htmlBtn">HTML report</button>
  <div class="cards">
    <div class="card">Total Invested<span id="totalInvested">-</span></div>
    <div class="card">Returns<span id="returnsValue">-</span></div>
    <div class="card">Final Value<span id="finalValue">-</span></div>
    <div class="card">Real Value<span id="realValue">-</span></div>
    <div class="card">Expense Ratio Cost<span id="expenseCost">-</span></div>
    <div class="card">Exit Load<span id="exitCost">-</span></div>
    <div class="card">Inflation Erosion<span id="inflationCost">-</span></div>
    <div class="card">Total Hidden Cost<span id="totalHiddenCost">-</span></div>
  </div>
  <div id="chartBox"><canvas id="resultChart"></canvas></div>
</div>

<div id="compareTab" class="tab">
  <h3>Strategy A</h3>
  <label>Expense ratio % <input id="a_expense" type="number" step="0.01"></label>
  <label>Exit load % <input id="a_exit" type="number" step="0.01"></label>
  <label>Tax % <input id="a_tax" type="number" step="0.1"></label>
  <h3>Strategy B</h3>
  <label>Expense ratio % <input id="b_expense" type="number" step="0.01"></label>
  <label>Exit load % <input id="b_exit" type="number" step="0.01"></label>
  <label>Tax % <input id="b_tax" type="number" step="0.1"></label>
  <button id="compareBtn">Compare</button>
  <button id="pdfCompareBtn">Download PDF</button>
  <div class="cards">
    <div class="card">Strategy A final<span id="a_final">-</span></div>
    <div class="card">Strategy B final<span id="b_final">-</span></div>
    <div class="card">Difference<span id="difference">-</span></div>
  </div>
</div>

<script>
const $ = id => document.getElementById(id);
let chart = null, chartID = "", lastPulse = 0, lastNotice = 0, polling = false;

document.querySelectorAll(".tabs button").forEach(btn => {
  btn.onclick = () => {
    document.querySelectorAll(".tabs button, .tab").forEach(e => e.classList.remove("active"));
    btn.classList.add("active");
    $(btn.dataset.tab).classList.add("active");
  };
});

async function loadConfig() {
  const cfg = await (await fetch("/api/config")).json();
  $("monthlyAmount").value = cfg.plan.monthly_amount;
  $("years").value = cfg.plan.years;
  $("expectedReturn").value = cfg.plan.expected_return;
  $("stepUp").value = cfg.plan.step_up_percent;
  $("inflation").value = cfg.plan.inflation_percentage;
  $("expenseRatio").value = cfg.plan.expense_ratio;
  $("exitLoad").value = cfg.plan.exit_load;
  for (const side of ["a", "b"]) {
    const s = cfg.comparison["strategy_" + side];
    $(side + "_expense").value = s.expense_ratio;
    $(side + "_exit").value = s.exit_load;
    $(side + "_tax").value = s.tax_percentage;
  }
}

function base() {
  return {
    monthly_amount: +$("monthlyAmount").value,
    years: +$("years").value,
    expected_return: +$("expectedReturn").value,
    step_up_percent: +$("stepUp").value,
    inflation_percentage: +$("inflation").value
  };
}

function render(snap) {
  for (const [field, text] of Object.entries(snap.fields || {})) {
    if ($(field)) $(field).textContent = text;
  }
  for (const [field, cls] of Object.entries(snap.classes || {})) {
    if ($(field)) $(field).className = cls;
  }
  if (snap.notice_seq !== lastNotice) {
    lastNotice = snap.notice_seq;
    $("notice").textContent = snap.notice || "";
  }
  if (snap.pulse !== lastPulse) {
    lastPulse = snap.pulse;
    document.querySelectorAll(".card").forEach(card => {
      card.classList.remove("fade-slide");
      void card.offsetWidth;
      card.classList.add("fade-slide");
    });
  }
}

async function poll() {
  if (polling) return;
  polling = true;
  try {
    for (;;) {
      const snap = await (await fetch("/api/display")).json();
      render(snap);
      if (!snap.animating) break;
      await new Promise(r => requestAnimationFrame(r));
    }
  } finally {
    polling = false;
  }
}

async function refreshChart() {
  const res = await (await fetch("/api/chart")).json();
  if (!res.dataset || res.id === chartID) return;
  chartID = res.id;
  if (chart) chart.destroy();
  chart = new Chart($("resultChart"), {
    type: res.dataset.kind,
    data: {
      labels: res.dataset.slices.map(s => s.label),
      datasets: [{
        data: res.dataset.slices.map(s => s.value),
        backgroundColor: res.dataset.slices.map(s => s.color)
      }]
    },
    options: { cutout: "70%", plugins: { legend: { display: false } } }
  });
}

$("calculateBtn").onclick = async () => {
  $("notice").textContent = "";
  await fetch("/api/calculate", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ ...base(), expense_ratio: +$("expenseRatio").value, exit_load: +$("exitLoad").value })
  });
  await refreshChart();
  await poll();
};

$("compareBtn").onclick = async () => {
  $("notice").textContent = "";
  const side = s => ({
    expense_ratio: +$(s + "_expense").value,
    exit_load: +$(s + "_exit").value,
    tax_percentage: +$(s + "_tax").value
  });
  await fetch("/api/compare", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ base: base(), strategy_a: side("a"), strategy_b: side("b") })
  });
  await poll();
};

$("pdfSipBtn").onclick = () => { window.location = "/api/export-pdf/sip"; };
$("pdfCompareBtn").onclick = () => { window.location = "/api/export-pdf/compare"; };
$("htmlBtn").onclick = () => { window.location = "/api/export-html"; };

loadConfig().then(poll);
</script>
</body>
</html>
`
