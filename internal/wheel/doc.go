// Package wheel turns a year of daily weather records into the geometry of a
// circular chart.
//
// Each day occupies one angular slot. The angular scale maps the first record's
// date to 0 and the last one to a full turn minus one slot, so the last day
// never overlaps the first. Temperatures are mapped radially with an area-true
// scale between the inner and outer radius, precipitation becomes a bubble
// radius and humidity a radial offset plus a gray tone beyond the outer radius.
//
// A [Chart] holds the normalized records, the scales built from them and the
// current [Scope]. The condition summary in the middle of the wheel is
// re-packed from scratch on every scope transition.
//
// A Chart is not safe for concurrent use; callers serialize events.
package wheel
