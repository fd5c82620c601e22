package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Order is the (p, d, q) order of an ARIMA model.
type Order struct {
	P int `mapstructure:"p" yaml:"p"`
	D int `mapstructure:"d" yaml:"d"`
	Q int `mapstructure:"q" yaml:"q"`
}

func DefaultOrder() Order { return Order{P: 1, D: 1, Q: 1} }

func (o Order) String() string { return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q) }

// MinObservations is the shortest series FitARIMA accepts: after
// differencing there must be more residuals than estimated coefficients.
func (o Order) MinObservations() int { return o.D + o.P + o.Q + 2 }

// ARIMA is a fitted model. Coefficients are estimated by minimising the
// conditional sum of squared one-step residuals of the differenced series.
type ARIMA struct {
	Order  Order
	AR     []float64
	MA     []float64
	Mean   float64 // subtracted before fitting; only non-zero when D == 0
	Sigma2 float64
	LogLik float64
	AIC    float64
	NObs   int

	history   []float64 // original series
	diffed    []float64 // differenced, demeaned series
	residuals []float64
}

// FitARIMA estimates an ARIMA model over the whole series.
func FitARIMA(series []float64, order Order) (*ARIMA, error) {
	if order.P < 0 || order.D < 0 || order.Q < 0 {
		return nil, fmt.Errorf("invalid order %s", order)
	}
	if len(series) < order.MinObservations() {
		return nil, &InsufficientHistoryError{What: order.String(), Have: len(series), Need: order.MinObservations()}
	}
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ModelFitError{Model: order.String(), Reason: fmt.Sprintf("observation %d is not finite", i)}
		}
	}

	m := &ARIMA{Order: order, NObs: len(series), history: append([]float64(nil), series...)}
	z := difference(series, order.D)
	if order.D == 0 {
		m.Mean = stat.Mean(z, nil)
		for i := range z {
			z[i] -= m.Mean
		}
	}
	m.diffed = z

	k := order.P + order.Q
	best := make([]float64, k)
	if k > 0 {
		problem := optimize.Problem{
			Func: func(u []float64) float64 {
				ar, ma := m.coefficients(u)
				return css(z, ar, ma, nil)
			},
		}
		settings := &optimize.Settings{FuncEvaluations: 20000}
		res, err := optimize.Minimize(problem, make([]float64, k), settings, &optimize.NelderMead{})
		if err != nil {
			return nil, &ModelFitError{Model: order.String(), Reason: "optimizer did not converge", Err: err}
		}
		best = res.X
	}

	m.AR, m.MA = m.coefficients(best)
	m.residuals = make([]float64, len(z))
	sse := css(z, m.AR, m.MA, m.residuals)
	n := float64(len(z) - order.P)
	m.Sigma2 = sse / n
	if math.IsNaN(m.Sigma2) || math.IsInf(m.Sigma2, 0) {
		return nil, &ModelFitError{Model: order.String(), Reason: "residual variance is not finite"}
	}
	if m.Sigma2 > 0 {
		m.LogLik = -n / 2 * (math.Log(2*math.Pi*m.Sigma2) + 1)
	} else {
		m.LogLik = math.Inf(1)
	}
	m.AIC = 2*float64(k+1) - 2*m.LogLik
	return m, nil
}

// coefficients maps unconstrained optimizer values into (-1, 1).
func (m *ARIMA) coefficients(u []float64) (ar, ma []float64) {
	ar = make([]float64, m.Order.P)
	ma = make([]float64, m.Order.Q)
	for i := range ar {
		ar[i] = math.Tanh(u[i])
	}
	for j := range ma {
		ma[j] = math.Tanh(u[m.Order.P+j])
	}
	return ar, ma
}

// css returns the conditional sum of squares, conditioning on the first p
// observations and zero pre-sample residuals. When resid is non-nil it
// receives the one-step residuals.
func css(z, ar, ma, resid []float64) float64 {
	p := len(ar)
	e := resid
	if e == nil {
		e = make([]float64, len(z))
	}
	for i := 0; i < p && i < len(e); i++ {
		e[i] = 0
	}
	sum := 0.0
	for t := p; t < len(z); t++ {
		pred := 0.0
		for i, phi := range ar {
			pred += phi * z[t-1-i]
		}
		for j, theta := range ma {
			if t-1-j >= 0 {
				pred += theta * e[t-1-j]
			}
		}
		e[t] = z[t] - pred
		sum += e[t] * e[t]
	}
	return sum
}

// Forecast returns steps point forecasts beyond the end of the series.
func (m *ARIMA) Forecast(steps int) []float64 {
	z := append([]float64(nil), m.diffed...)
	e := append([]float64(nil), m.residuals...)
	for h := 0; h < steps; h++ {
		t := len(z)
		pred := 0.0
		for i, phi := range m.AR {
			if t-1-i >= 0 {
				pred += phi * z[t-1-i]
			}
		}
		for j, theta := range m.MA {
			if t-1-j >= 0 {
				pred += theta * e[t-1-j]
			}
		}
		z = append(z, pred)
		e = append(e, 0) // future shocks have zero expectation
	}
	future := z[len(m.diffed):]
	for i := range future {
		future[i] += m.Mean
	}
	return integrate(m.history, future, m.Order.D)
}

// Term is a named fitted value of a model.
type Term struct {
	Name  string
	Value float64
}

// Summary lists the coefficients followed by sigma2, log likelihood and AIC.
func (m *ARIMA) Summary() []Term {
	var out []Term
	for i, phi := range m.AR {
		out = append(out, Term{fmt.Sprintf("ar.L%d", i+1), phi})
	}
	for j, theta := range m.MA {
		out = append(out, Term{fmt.Sprintf("ma.L%d", j+1), theta})
	}
	if m.Order.D == 0 {
		out = append(out, Term{"mean", m.Mean})
	}
	return append(out,
		Term{"sigma2", m.Sigma2},
		Term{"log_likelihood", m.LogLik},
		Term{"aic", m.AIC},
	)
}

// Residuals returns the one-step in-sample residuals of the differenced
// series, leaving out the first P conditioning observations.
func (m *ARIMA) Residuals() []float64 {
	if len(m.residuals) <= m.Order.P {
		return nil
	}
	return append([]float64(nil), m.residuals[m.Order.P:]...)
}

// difference applies first differencing d times.
func difference(x []float64, d int) []float64 {
	out := append([]float64(nil), x...)
	for k := 0; k < d; k++ {
		next := make([]float64, len(out)-1)
		for i := 1; i < len(out); i++ {
			next[i-1] = out[i] - out[i-1]
		}
		out = next
	}
	return out
}

// integrate undoes d rounds of differencing for values forecast past the
// end of history.
func integrate(history, future []float64, d int) []float64 {
	if d == 0 {
		return append([]float64(nil), future...)
	}
	// last value of history at every differencing level 0..d-1
	levels := make([][]float64, d)
	cur := history
	for k := 0; k < d; k++ {
		levels[k] = cur
		cur = difference(cur, 1)
	}
	out := append([]float64(nil), future...)
	for k := d - 1; k >= 0; k-- {
		last := levels[k][len(levels[k])-1]
		for i := range out {
			last += out[i]
			out[i] = last
		}
	}
	return out
}
