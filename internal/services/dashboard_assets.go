package services

const dashboardCSS = `
body { font-family: Arial, sans-serif; margin: 0; padding: 16px; background: #f6f7fb; }
.header { display: flex; flex-direction: column; gap: 8px; margin-bottom: 12px; }
.h1 { font-size: 20px; font-weight: 700; }
.sub { color: #555; }
.kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 12px; margin-bottom: 16px; }
.kpi, .chart-card, .table-wrap { background: white; border-radius: 14px; box-shadow: 0 2px 10px rgba(0,0,0,0.07); }
.kpi { padding: 14px; }
.kpi-title { font-size: 12px; color: #666; }
.kpi-value { font-size: 22px; font-weight: 800; margin-top: 6px; }
.kpi-context { font-size: 12px; color: #777; margin-top: 6px; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(420px, 1fr)); gap: 14px; }
.chart-card { padding: 12px; }
.chart-title, .table-title { font-weight: 700; margin-bottom: 8px; }
.chart { height: 320px; }
.table-wrap { margin-top: 16px; padding: 12px; overflow-x: auto; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th, td { border-bottom: 1px solid #eee; padding: 8px; text-align: left; white-space: nowrap; }
th { background: #fafafa; }
.badge { display: inline-block; margin-right: 4px; padding: 4px 8px; border-radius: 999px; background: #fff3cd; border: 1px solid #ffeeba; color: #856404; font-size: 12px; }
`

// dashboardJS draws every entry of CHARTS with Plotly. A chart that cannot be
// drawn is logged and skipped so the rest of the page still renders.
const dashboardJS = `
const MARGIN = {t: 10, l: 40, r: 10, b: 40};

function columnsOf(axis) {
  if (axis === null || axis === undefined) return [];
  return Array.isArray(axis) ? axis : [axis];
}

function knownColumn(name) {
  return FULL_COLUMNS.indexOf(name) >= 0;
}

function aggByCategory(rows, xcol, ycol, topN) {
  const sums = new Map();
  for (const r of rows) {
    const k = (r[xcol] === null || r[xcol] === undefined) ? "NULL" : String(r[xcol]);
    const v = Number(r[ycol]);
    if (r[ycol] !== null && !isNaN(v)) {
      sums.set(k, (sums.get(k) || 0) + v);
    }
  }
  const arr = Array.from(sums.entries()).map(([k, v]) => ({k, v}));
  arr.sort((a, b) => b.v - a.v);
  const top = arr.slice(0, topN || 20);
  return {x: top.map(o => o.k), y: top.map(o => o.v)};
}

function placeholder(id) {
  Plotly.newPlot(id, [], {title: 'No valid x/y', margin: {t: 20}});
}

function makeChart(spec) {
  const id = spec.id;
  const type = spec.type || 'line';
  const x = spec.x;
  const ys = columnsOf(spec.y).filter(knownColumn);

  if (type === 'hist') {
    if (!x || !knownColumn(x)) { placeholder(id); return; }
    const vals = DATA.map(r => r[x]).filter(v => v !== null && !isNaN(Number(v))).map(Number);
    Plotly.newPlot(id, [{x: vals, type: 'histogram'}], {margin: MARGIN});
    return;
  }

  if (!x || !knownColumn(x) || ys.length === 0) {
    placeholder(id);
    return;
  }

  if (type === 'bar' && spec.aggregate) {
    const agg = aggByCategory(DATA, x, ys[0], spec.top_n || 20);
    Plotly.newPlot(id, [{x: agg.x, y: agg.y, type: 'bar'}], {
      margin: {t: 10, l: 40, r: 10, b: 80},
      xaxis: {tickangle: -30},
    });
    return;
  }

  const xs = DATA.map(r => r[x]);
  const traces = ys.map(col => {
    const trace = {x: xs, y: DATA.map(r => r[col]), name: col};
    if (type === 'bar') {
      trace.type = 'bar';
    } else if (type === 'scatter') {
      trace.type = 'scatter';
      trace.mode = 'markers';
    } else {
      trace.type = 'scatter';
      trace.mode = 'lines+markers';
      trace.fill = (type === 'area') ? 'tozeroy' : 'none';
    }
    return trace;
  });
  Plotly.newPlot(id, traces, {margin: MARGIN, showlegend: traces.length > 1});
}

for (const spec of CHARTS) {
  try {
    makeChart(spec);
  } catch (e) {
    console.log("chart error", spec, e);
  }
}
`
