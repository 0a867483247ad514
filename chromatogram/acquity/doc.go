// Package acquity reads chromatogram text exports written by Waters Acquity
// systems.
//
// An export starts with tab-separated "key<TAB>value" metadata lines. The
// line beginning with "Chromatogram Data:" switches to the data section:
// the next line is the tab-separated column header and every following line
// holds one whitespace-separated row of numbers.
package acquity
