package duration

import (
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/template"
)

// Source tags where a resolved duration came from.
type Source string

const (
	SourceExisting Source = "existing"
	SourceTemplate Source = "template"
	SourceDefault  Source = "default"
)

// DefaultMinutes is the fallback duration when neither the item nor a
// template provides one.
const DefaultMinutes = 60

// Resolve returns the effective duration of an item in minutes. An existing
// duration on the item always wins; otherwise the template normative is
// scaled by the item quantity; otherwise fallback applies. fallback values
// below one are replaced by DefaultMinutes.
func Resolve(it model.WorkItem, idx *template.Index, fallback int) (int, Source) {
	if it.Duration > 0 {
		return it.Duration, SourceExisting
	}
	if norm, ok := idx.Duration(it.Kind(), it.Name()); ok {
		return norm * it.QuantityValue(), SourceTemplate
	}
	if fallback <= 0 {
		fallback = DefaultMinutes
	}
	return fallback, SourceDefault
}
