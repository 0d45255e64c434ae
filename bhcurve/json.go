package bhcurve

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/spline"
)

type splineJSON struct {
	Knots      []float64 `json:"knots"`
	Values     []float64 `json:"values"`
	Slopes     []float64 `json:"slopes"`
	LeftSlope  float64   `json:"left_slope"`
	RightSlope float64   `json:"right_slope"`
}

func splineToJSON(s *spline.Spline) *splineJSON {
	if s == nil {
		return nil
	}
	left, right := s.BoundarySlopes()

	return &splineJSON{
		Knots:      s.Knots(),
		Values:     s.Values(),
		Slopes:     s.Slopes(),
		LeftSlope:  left,
		RightSlope: right,
	}
}

func splineFromJSON(sj *splineJSON) (*spline.Spline, error) {
	if sj == nil {
		return nil, nil
	}

	return spline.Restore(sj.Knots, sj.Values, sj.Slopes, sj.LeftSlope, sj.RightSlope)
}

type curveJSON struct {
	Axis       string      `json:"axis"`
	FillFactor float64     `json:"fill_factor"`
	Floor      float64     `json:"floor"`
	FromField  *splineJSON `json:"from_field,omitempty"`
	FromFlux   *splineJSON `json:"from_flux,omitempty"`
}

// MarshalJSON exports the fitted curve state, not the raw measurements.
// The output round-trips through UnmarshalJSON without refitting.
func (c *Curve) MarshalJSON() ([]byte, error) {
	return json.Marshal(curveJSON{
		Axis:       c.axis.String(),
		FillFactor: c.fillFactor,
		Floor:      c.floor,
		FromField:  splineToJSON(c.fromField),
		FromFlux:   splineToJSON(c.fromFlux),
	})
}

// UnmarshalJSON restores a curve exported by MarshalJSON.
func (c *Curve) UnmarshalJSON(data []byte) error {
	var cj curveJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return fmt.Errorf("bhcurve: %w: %s", errs.ErrInvalidRecord, err)
	}

	var axis Axis
	switch cj.Axis {
	case AxisField.String():
		axis = AxisField
	case AxisFlux.String():
		axis = AxisFlux
	default:
		return fmt.Errorf("bhcurve: axis %q: %w", cj.Axis, errs.ErrInvalidRecord)
	}

	fromField, err := splineFromJSON(cj.FromField)
	if err != nil {
		return err
	}
	fromFlux, err := splineFromJSON(cj.FromFlux)
	if err != nil {
		return err
	}

	restored, err := Restore(axis, cj.FillFactor, cj.Floor, fromField, fromFlux)
	if err != nil {
		return err
	}
	*c = *restored

	return nil
}
