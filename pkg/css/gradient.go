package css

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/matzehuels/bannersmith/pkg/errors"
)

// Stop is one color stop of a gradient. Offset is a fraction of the gradient
// line in [0, 1].
type Stop struct {
	Color  color.NRGBA
	Offset float64
}

// LinearGradient is a parsed CSS linear-gradient() value.
type LinearGradient struct {
	// Angle is the CSS angle in degrees: 0 points up, angles turn clockwise.
	// It is ignored when the gradient targets a corner.
	Angle float64
	Stops []Stop

	cornerX, cornerY int
}

// ToCorner reports whether g was written as "to <vertical> <horizontal>".
func (g LinearGradient) ToCorner() bool {
	return g.cornerX != 0 && g.cornerY != 0
}

// AngleFor returns the effective angle in degrees for a w×h box. Corner
// gradients depend on the aspect ratio of the box.
func (g LinearGradient) AngleFor(w, h float64) float64 {
	if !g.ToCorner() {
		return g.Angle
	}
	dx := float64(g.cornerX) * h
	dy := float64(g.cornerY) * w
	return math.Atan2(dx, -dy) * 180 / math.Pi
}

// Line returns the endpoints of the gradient line for a w×h box, following
// CSS: the line passes through the center and its length is chosen so the
// 0% and 100% stops touch the box corners.
func (g LinearGradient) Line(w, h float64) (x0, y0, x1, y1 float64) {
	a := g.AngleFor(w, h) * math.Pi / 180
	sin, cos := math.Sin(a), math.Cos(a)
	half := (math.Abs(w*sin) + math.Abs(h*cos)) / 2
	cx, cy := w/2, h/2
	dx, dy := sin*half, -cos*half
	return cx - dx, cy - dy, cx + dx, cy + dy
}

// ParseLinearGradient parses a linear-gradient() expression, for example
//
//	linear-gradient(135deg, #667eea 0%, #764ba2 100%)
//	linear-gradient(to right, red, rgba(0, 0, 255, 0.5) 80%)
//
// The direction defaults to "to bottom". Stops without an offset are spread
// evenly between their neighbours.
func ParseLinearGradient(s string) (LinearGradient, error) {
	toks := tokenize(strings.TrimSpace(s))
	if len(toks) == 0 || toks[0].Type != scanner.TokenFunction ||
		!strings.EqualFold(toks[0].Value, "linear-gradient(") {
		return LinearGradient{}, errors.New(errors.ErrCodeInvalidInput, "not a linear-gradient: %q", s)
	}

	args, rest, err := functionArgs(toks[1:])
	if err != nil {
		return LinearGradient{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid gradient %q", s)
	}
	if len(rest) != 0 {
		return LinearGradient{}, errors.New(errors.ErrCodeInvalidInput, "unexpected input after gradient %q", s)
	}
	if len(args) == 0 {
		return LinearGradient{}, errors.New(errors.ErrCodeInvalidInput, "empty gradient %q", s)
	}

	g := LinearGradient{Angle: 180}
	if ok, err := g.parseDirection(args[0]); err != nil {
		return LinearGradient{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid gradient direction in %q", s)
	} else if ok {
		args = args[1:]
	}

	if len(args) < 2 {
		return LinearGradient{}, errors.New(errors.ErrCodeInvalidInput, "gradient %q needs at least two color stops", s)
	}

	offsets := make([]float64, len(args))
	known := make([]bool, len(args))
	for i, arg := range args {
		if len(arg) == 0 {
			return LinearGradient{}, errors.New(errors.ErrCodeInvalidInput, "empty color stop in %q", s)
		}
		colorToks := arg
		if last := arg[len(arg)-1]; last.Type == scanner.TokenPercentage {
			f, err := strconv.ParseFloat(strings.TrimSuffix(last.Value, "%"), 64)
			if err != nil {
				return LinearGradient{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid stop offset in %q", s)
			}
			offsets[i], known[i] = f/100, true
			colorToks = arg[:len(arg)-1]
		}
		c, err := ParseColor(join(colorToks))
		if err != nil {
			return LinearGradient{}, err
		}
		g.Stops = append(g.Stops, Stop{Color: c})
	}

	resolveOffsets(offsets, known)
	for i := range g.Stops {
		g.Stops[i].Offset = offsets[i]
	}
	return g, nil
}

// parseDirection consumes an angle or a "to <side>" argument. It reports
// false when arg is a color stop instead.
func (g *LinearGradient) parseDirection(arg []*scanner.Token) (bool, error) {
	if len(arg) == 0 {
		return false, nil
	}
	first := arg[0]

	if first.Type == scanner.TokenIdent && strings.EqualFold(first.Value, "to") {
		var x, y int
		for _, t := range arg[1:] {
			if t.Type != scanner.TokenIdent {
				return false, errors.New(errors.ErrCodeInvalidInput, "unexpected %q", t.Value)
			}
			switch strings.ToLower(t.Value) {
			case "left":
				x = -1
			case "right":
				x = 1
			case "top":
				y = -1
			case "bottom":
				y = 1
			default:
				return false, errors.New(errors.ErrCodeInvalidInput, "unknown side %q", t.Value)
			}
		}
		switch {
		case x != 0 && y != 0:
			g.cornerX, g.cornerY = x, y
		case x == 1:
			g.Angle = 90
		case x == -1:
			g.Angle = 270
		case y == -1:
			g.Angle = 0
		case y == 1:
			g.Angle = 180
		default:
			return false, errors.New(errors.ErrCodeInvalidInput, "missing side after \"to\"")
		}
		return true, nil
	}

	if len(arg) != 1 {
		return false, nil
	}
	switch first.Type {
	case scanner.TokenDimension:
		deg, err := parseAngle(first.Value)
		if err != nil {
			return false, err
		}
		g.Angle = deg
		return true, nil
	case scanner.TokenNumber:
		if f, err := strconv.ParseFloat(first.Value, 64); err == nil && f == 0 {
			g.Angle = 0
			return true, nil
		}
		return false, errors.New(errors.ErrCodeInvalidInput, "angle %q needs a unit", first.Value)
	}
	return false, nil
}

func parseAngle(v string) (float64, error) {
	units := []struct {
		suffix string
		toDeg  float64
	}{
		{"grad", 0.9},
		{"turn", 360},
		{"deg", 1},
		{"rad", 180 / math.Pi},
	}
	lv := strings.ToLower(v)
	for _, u := range units {
		if strings.HasSuffix(lv, u.suffix) {
			f, err := strconv.ParseFloat(strings.TrimSuffix(lv, u.suffix), 64)
			if err != nil {
				return 0, err
			}
			return f * u.toDeg, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unsupported angle %q", v)
}

// resolveOffsets fills missing offsets: the first defaults to 0, the last to
// 1, and runs of missing interior stops are spaced evenly. Offsets are then
// forced to be non-decreasing.
func resolveOffsets(offsets []float64, known []bool) {
	n := len(offsets)
	if !known[0] {
		offsets[0], known[0] = 0, true
	}
	if !known[n-1] {
		offsets[n-1], known[n-1] = 1, true
	}
	for i := 1; i < n; i++ {
		if known[i] {
			continue
		}
		j := i
		for !known[j] {
			j++
		}
		start, end := offsets[i-1], offsets[j]
		step := (end - start) / float64(j-i+1)
		for k := i; k < j; k++ {
			offsets[k] = start + step*float64(k-i+1)
			known[k] = true
		}
		i = j
	}
	for i := 1; i < n; i++ {
		if offsets[i] < offsets[i-1] {
			offsets[i] = offsets[i-1]
		}
	}
}
