package uk

import (
	"github.com/hupe1980/steelcat"
	"github.com/hupe1980/steelcat/catalog"
	"github.com/hupe1980/steelcat/property"
)

// section carries the parts every typed section shares. Constructors receive
// a cleaned record with the designation property back-filled, so both fields
// are always set.
type section struct {
	designation string
	props       property.Record
}

// Designation returns the section's natural key.
func (s section) Designation() string { return s.designation }

// Properties returns the section's full property record.
func (s section) Properties() property.Record { return s.props }

// Geometry holds the dimensional properties shared by open rolled profiles.
// Field names follow the published UK tables: h/b in mm, areas in cm²,
// second moments in cm⁴, moduli in cm³.
type Geometry struct {
	MassPerMetre float64 // kg/m
	H            float64 // overall depth (mm)
	B            float64 // overall width (mm)
	Tw           float64 // web thickness (mm)
	Tf           float64 // flange thickness (mm)
	R            float64 // root radius (mm)
	D            float64 // depth between fillets (mm)
	A            float64 // cross-sectional area (cm²)
	Iyy          float64 // second moment of area, major axis (cm⁴)
	Izz          float64 // second moment of area, minor axis (cm⁴)
	Ryy          float64 // radius of gyration, major axis (cm)
	Rzz          float64 // radius of gyration, minor axis (cm)
	WelYY        float64 // elastic modulus, major axis (cm³)
	WelZZ        float64 // elastic modulus, minor axis (cm³)
	WplYY        float64 // plastic modulus, major axis (cm³)
	WplZZ        float64 // plastic modulus, minor axis (cm³)
}

func geometryFromRecord(rec property.Record) Geometry {
	f := func(key string) float64 {
		v, _ := rec.Float(key)
		return v
	}
	return Geometry{
		MassPerMetre: f("mass_per_metre"),
		H:            f("h"),
		B:            f("b"),
		Tw:           f("tw"),
		Tf:           f("tf"),
		R:            f("r"),
		D:            f("d"),
		A:            f("A"),
		Iyy:          f("I_yy"),
		Izz:          f("I_zz"),
		Ryy:          f("i_yy"),
		Rzz:          f("i_zz"),
		WelYY:        f("W_el_yy"),
		WelZZ:        f("W_el_zz"),
		WplYY:        f("W_pl_yy"),
		WplZZ:        f("W_pl_zz"),
	}
}

// UniversalBeam is a UB section.
type UniversalBeam struct {
	section
	Geometry
	SerialSize      string
	IsAdditional    bool
	WarpingConstant float64 // I_w (cm⁶)
	TorsionConstant float64 // I_t (cm⁴)
}

// SectionType returns UB.
func (UniversalBeam) SectionType() catalog.SectionType { return UB }

func newUniversalBeam(designation string, rec property.Record) (steelcat.Section, error) {
	ub := &UniversalBeam{
		section:  section{designation: designation, props: rec},
		Geometry: geometryFromRecord(rec),
	}
	ub.SerialSize, _ = rec.String("serial_size")
	ub.IsAdditional, _ = rec.Bool("is_additional")
	ub.WarpingConstant, _ = rec.Float("I_w")
	ub.TorsionConstant, _ = rec.Float("I_t")
	return ub, nil
}

// UniversalColumn is a UC section.
type UniversalColumn struct {
	section
	Geometry
	SerialSize      string
	IsAdditional    bool
	WarpingConstant float64 // I_w (cm⁶)
	TorsionConstant float64 // I_t (cm⁴)
}

// SectionType returns UC.
func (UniversalColumn) SectionType() catalog.SectionType { return UC }

func newUniversalColumn(designation string, rec property.Record) (steelcat.Section, error) {
	uc := &UniversalColumn{
		section:  section{designation: designation, props: rec},
		Geometry: geometryFromRecord(rec),
	}
	uc.SerialSize, _ = rec.String("serial_size")
	uc.IsAdditional, _ = rec.Bool("is_additional")
	uc.WarpingConstant, _ = rec.Float("I_w")
	uc.TorsionConstant, _ = rec.Float("I_t")
	return uc, nil
}

// ParallelFlangeChannel is a PFC section: a C-shaped profile used for
// secondary beams, purlins and cladding rails.
type ParallelFlangeChannel struct {
	section
	Geometry
	SerialSize  string
	ShearCentre float64 // c_y, distance from web to shear centre (mm)
}

// SectionType returns PFC.
func (ParallelFlangeChannel) SectionType() catalog.SectionType { return PFC }

func newParallelFlangeChannel(designation string, rec property.Record) (steelcat.Section, error) {
	pfc := &ParallelFlangeChannel{
		section:  section{designation: designation, props: rec},
		Geometry: geometryFromRecord(rec),
	}
	pfc.SerialSize, _ = rec.String("serial_size")
	pfc.ShearCentre, _ = rec.Float("c_y")
	return pfc, nil
}

// WeldSpecification is a WELDS entry. Weld records are specification rows,
// not rolled profiles, so they carry no geometry block.
type WeldSpecification struct {
	section
	WeldType string
	Size     float64 // leg length (mm)
}

// SectionType returns WELDS.
func (WeldSpecification) SectionType() catalog.SectionType { return Welds }

func newWeldSpecification(designation string, rec property.Record) (steelcat.Section, error) {
	w := &WeldSpecification{
		section: section{designation: designation, props: rec},
	}
	w.WeldType, _ = rec.String("weld_type")
	w.Size, _ = rec.Float("size")
	return w, nil
}
