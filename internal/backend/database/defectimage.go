package database

// DefectImage is one processed upload: a defect label plus the four PNG variants
type DefectImage struct {
	ID                  string `db:"id" json:"id"`
	DefectName          string `db:"defect_name" json:"defectName"`
	NewDefectImage      []byte `db:"new_defect_image" json:"newDefectImage"`           // red/white
	HarigamiDefectImage []byte `db:"harigami_defect_image" json:"harigamiDefectImage"` // blue/white
	PreviousDefectImage []byte `db:"previous_defect_image" json:"previousDefectImage"` // grayscale
	RepairedDefectImage []byte `db:"repaired_defect_image" json:"repairedDefectImage"` // yellow framed
}
