package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// Render produces a single self-contained HTML document: two plot regions
// (price with buy/sell markers, then the two averages) and the trade table.
// All series data is embedded as literals, so the only network dependency is
// the Plotly script itself; if that fails to load the page reports it in a
// status line and the trade table stays readable. Output is byte-for-byte
// reproducible for identical inputs.
func Render(title string, bundle SeriesBundle, trades []Trade) ([]byte, error) {
	data := reportData{Title: title, Trades: trades}

	var err error
	if data.PriceX, data.PriceY, err = encodeXY(bundle.Price); err != nil {
		return nil, err
	}
	if data.FastX, data.FastY, err = encodeXY(bundle.Fast); err != nil {
		return nil, err
	}
	if data.SlowX, data.SlowY, err = encodeXY(bundle.Slow); err != nil {
		return nil, err
	}
	if data.BuyX, data.BuyY, err = encodeXY(bundle.Buy); err != nil {
		return nil, err
	}
	if data.SellX, data.SellY, err = encodeXY(bundle.Sell); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

type reportData struct {
	Title  string
	Trades []Trade

	PriceX, PriceY template.JS
	FastX, FastY   template.JS
	SlowX, SlowY   template.JS
	BuyX, BuyY     template.JS
	SellX, SellY   template.JS
}

// encodeXY splits points into parallel JSON arrays for embedding in the
// page's script block.
func encodeXY(points []Point) (template.JS, template.JS, error) {
	xs := make([]int64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.XMillis
		ys[i] = p.Y
	}
	xb, err := json.Marshal(xs)
	if err != nil {
		return "", "", fmt.Errorf("encoding x values: %w", err)
	}
	yb, err := json.Marshal(ys)
	if err != nil {
		return "", "", fmt.Errorf("encoding y values: %w", err)
	}
	return template.JS(xb), template.JS(yb), nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
</head>
<body>
  <div style="max-width: 1200px; margin: 0 auto; padding: 12px;">
    <h2 style="margin: 0 0 8px; font-family: sans-serif;">{{.Title}}</h2>
    <div id="chartsStatus" style="font-family: sans-serif; color: #444; margin-bottom: 8px;">
      Loading charts… (if this stays blank, Plotly may be blocked; the trades table below still renders)
    </div>
    <noscript>
      <div style="font-family: sans-serif; color: #b00; margin-bottom: 8px;">
        JavaScript is disabled. Charts require JavaScript; the trades table is still available.
      </div>
    </noscript>
    <div id="price" style="height: 520px;"></div>
    <div id="sma" style="height: 360px; margin-top: 14px;"></div>
    <h3 style="margin: 16px 0 8px; font-family: sans-serif;">Trades</h3>
    <table style="border-collapse: collapse; width: 100%; font-family: sans-serif;">
      <thead>
        <tr>
          <th style="text-align:left; border-bottom: 1px solid #ccc; padding: 6px;">Time (UTC)</th>
          <th style="text-align:left; border-bottom: 1px solid #ccc; padding: 6px;">Side</th>
          <th style="text-align:right; border-bottom: 1px solid #ccc; padding: 6px;">Fill Price</th>
        </tr>
      </thead>
      <tbody>
{{- if .Trades}}
{{- range .Trades}}
        <tr>
          <td style="padding: 6px; border-bottom: 1px solid #eee;">{{.TimeUTC}}</td>
          <td style="padding: 6px; border-bottom: 1px solid #eee;">{{.Side}}</td>
          <td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">{{printf "%.4f" .Price}}</td>
        </tr>
{{- end}}
{{- else}}
        <tr><td colspan="3" style="padding: 6px;">No trades</td></tr>
{{- end}}
      </tbody>
    </table>
    <p style="font-family: sans-serif; color: #444;">
      Tip: hover points to see exact timestamps and prices.
    </p>
  </div>

  <!-- Plotly loads after the page content so a blocked CDN cannot white-screen the table. -->
  <script src="https://cdn.plot.ly/plotly-2.30.0.min.js" async
          onerror="document.getElementById('chartsStatus').textContent='Plotly failed to load (CDN blocked/offline). The trades table above is still usable.';"></script>

  <script>
    const priceX = {{.PriceX}};
    const priceY = {{.PriceY}};
    const buyX   = {{.BuyX}};
    const buyY   = {{.BuyY}};
    const sellX  = {{.SellX}};
    const sellY  = {{.SellY}};
    const fastX  = {{.FastX}};
    const fastY  = {{.FastY}};
    const slowX  = {{.SlowX}};
    const slowY  = {{.SlowY}};

    function setStatus(msg) {
      const el = document.getElementById('chartsStatus');
      if (el) el.textContent = msg;
    }

    function renderCharts() {
      const priceTraces = [
        { x: priceX, y: priceY, type: 'scatter', mode: 'lines', name: 'Price', line: { width: 2 } },
        { x: buyX, y: buyY, type: 'scatter', mode: 'markers', name: 'Buy',
          marker: { size: 10, symbol: 'triangle-up', color: 'green' } },
        { x: sellX, y: sellY, type: 'scatter', mode: 'markers', name: 'Sell',
          marker: { size: 10, symbol: 'triangle-down', color: 'red' } }
      ];

      const commonLayout = {
        margin: { l: 50, r: 20, t: 30, b: 40 },
        xaxis: { type: 'date' },
        legend: { orientation: 'h' }
      };

      Plotly.newPlot('price', priceTraces, Object.assign({}, commonLayout, {
        title: 'Price with Buy/Sell markers',
        yaxis: { title: 'Price' }
      }), { responsive: true });

      const smaTraces = [
        { x: fastX, y: fastY, type: 'scatter', mode: 'lines', name: 'FastSMA', line: { width: 2 } },
        { x: slowX, y: slowY, type: 'scatter', mode: 'lines', name: 'SlowSMA', line: { width: 2 } }
      ];

      Plotly.newPlot('sma', smaTraces, Object.assign({}, commonLayout, {
        title: 'SMA',
        yaxis: { title: 'Value' }
      }), { responsive: true });

      setStatus('Charts loaded.');
    }

    (function waitForPlotly(maxWaitMs) {
      const started = Date.now();
      (function tick() {
        if (window.Plotly && typeof window.Plotly.newPlot === 'function') {
          try {
            renderCharts();
          } catch (e) {
            setStatus('Chart rendering failed: ' + (e && e.message ? e.message : String(e)));
          }
          return;
        }
        if (Date.now() - started > maxWaitMs) {
          setStatus('Plotly did not load (offline or blocked). The trades table is still shown.');
          return;
        }
        setTimeout(tick, 100);
      })();
    })(5000);
  </script>
</body>
</html>
`))
