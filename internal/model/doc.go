// Package model defines the reference entities managed by geoadmin.
//
// Two flat entities exist: Country and State. A State points at its Country
// through CountryID on the write side, while the backend embeds the full
// Country object on the read side. Page wraps one server-side page of either
// entity.
//
// # Drafts
//
// Creation and update requests never send a whole entity. They send a draft
// holding only the editable fields:
//
//	CountryDraft -> {"name": "..."}
//	StateDraft   -> {"name": "...", "countryId": 7}
//
// Drafts are checked for required fields only. Anything beyond "required" is
// the backend's business.
package model
