// Package integrate provides numerical integration of sampled data and a
// discrete gradient.
//
// All integrators take samples y at strictly increasing abscissae x, which
// need not be evenly spaced. Cumulative variants return the running integral
// at x[1], x[2], ..., x[n-1] (length n-1); the totals are the last element.
package integrate
