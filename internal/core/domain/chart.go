package domain

// ChartSeries is a parallel labels/values pair describing one chart axis.
// Labels[i] and Data[i] correspond by index; the order is the aggregation's
// sort rule, not alphabetical.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Dataset is one named track of a MultiSeriesChart.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// MultiSeriesChart breaks a shared label axis into multiple named tracks.
// An empty chart serializes as {labels: [], datasets: []}; the front-end
// branches on this shape, so it must not collapse to the ChartSeries form.
type MultiSeriesChart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// MetricsSnapshot holds the scalar counters of the dashboard header.
// The JSON keys are the element IDs the front-end binds to.
type MetricsSnapshot struct {
	Total       int `json:"total-chamados"`
	New         int `json:"chamados-novos"`
	InProgress  int `json:"total-atribuido"`
	Pending     int `json:"total-pendente"`
	Resolved    int `json:"total-resolvido"`
	OpenedToday int `json:"chamados-abertos-dia"`
}

// DashboardCharts groups the chart payloads under their front-end keys.
type DashboardCharts struct {
	Requester    ChartSeries      `json:"requisitante"`
	Category     ChartSeries      `json:"categoria"`
	Location     ChartSeries      `json:"localizacao"`
	Status       ChartSeries      `json:"tipos"`
	PerMonth     ChartSeries      `json:"chamados_por_mes"`
	KindPerMonth MultiSeriesChart `json:"incidents_requests_monthly"`
}

// DashboardData is the complete payload served for one dashboard request.
type DashboardData struct {
	Metrics MetricsSnapshot `json:"metrics"`
	Charts  DashboardCharts `json:"charts"`
}
