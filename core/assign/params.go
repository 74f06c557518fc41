package assign

import (
	"strconv"

	"github.com/ouestbat/chantier/core/model"
)

// Parameter ids carrying worker attributes.
const (
	ParamRole  = "115"  // role code
	ParamLevel = "2673" // numeric qualification level
	ParamGrade = "2680" // qualification label
)

// Parameter ids describing document and approval state of the item itself.
// They qualify the paperwork, not the people, so the assigner skips them.
const (
	ParamDocState = "2475"
	ParamApproval = "2482"
)

var exemptParams = map[string]struct{}{
	ParamDocState: {},
	ParamApproval: {},
}

// workerAttrs maps a parameter id to the worker attribute it constrains. The
// accessor returns the textual value plus its numeric form when one exists.
var workerAttrs = map[string]func(model.Worker) (string, float64, bool){
	ParamRole: func(w model.Worker) (string, float64, bool) {
		n, err := strconv.ParseFloat(w.Role, 64)
		return w.Role, n, err == nil
	},
	ParamLevel: func(w model.Worker) (string, float64, bool) {
		if w.Level == 0 {
			return "", 0, false
		}
		return strconv.FormatFloat(w.Level, 'f', -1, 64), w.Level, true
	},
	ParamGrade: func(w model.Worker) (string, float64, bool) {
		n, err := strconv.ParseFloat(w.Grade, 64)
		return w.Grade, n, err == nil
	},
}
