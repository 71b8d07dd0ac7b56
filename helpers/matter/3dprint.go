package matter

import (
	"errors"

	"github.com/soypat/fsdf"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
	// PETG shrinks a little more than PLA and sags less around holes.
	PETG = ViscousMaterial{shrink: 0.4e-2, pullShrink: .3}
)

var errNonPositiveDim = errors.New("internal dimension must be positive")

// ViscousMaterial compensates printed fields for the shrinkage of a material.
type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// NewViscousMaterial returns a material with fractional thermal shrinkage
// shrink and additional hole shrinkage pullShrink in length units.
func NewViscousMaterial(shrink, pullShrink float64) ViscousMaterial {
	return ViscousMaterial{shrink: shrink, pullShrink: pullShrink}
}

// Scale returns f enlarged so it cools down to its modelled size.
func (m ViscousMaterial) Scale(f fsdf.Field) fsdf.Field {
	return f.ScaleBy(1 / (1 - m.shrink))
}

// InternalDimScale returns the modelled size of an internal feature such as
// a hole so that it prints at the real size.
func (m ViscousMaterial) InternalDimScale(real float64) (float64, error) {
	if real <= 0 {
		return 0, errNonPositiveDim
	}
	return real*(m.shrink+1) + m.pullShrink, nil
}
