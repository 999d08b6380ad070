// Package lectio resolves scripture and confession references into text.
// References are parsed, the version is chosen from the user, guild and
// default preferences, and the text is fetched from the backend that
// serves that version or from the confession store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, participle/).
package lectio
