// Package poly fits and evaluates real polynomials.
//
// Coefficients are stored in ascending power order: c[0] + c[1]*x + c[2]*x^2 ...
//
// Fit solves the least-squares problem with a Householder QR factorisation of
// the column-scaled Vandermonde matrix. Unlike a plain normal-equations solve
// it reports ill-posed problems (too few points, repeated abscissae) as errors
// instead of returning meaningless coefficients.
package poly
