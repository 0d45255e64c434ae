// Package ironloss fits and evaluates the Jordan iron loss law for
// soft-magnetic materials under sinusoidal excitation.
//
// The law splits specific loss into a static hysteresis share and a dynamic
// eddy-current share:
//
//	p = kh·(f/50 Hz)·(B/1.5 T)² + kec·((f/50 Hz)·(B/1.5 T))²
//
// Both coefficients are specific losses at the reference point (50 Hz,
// 1.5 T), the normalization commonly used in loss data sheets. A Model is
// built either from known coefficients via New or by least-squares fitting
// of measured loss triples via Fit (or FitCharacteristics for per-frequency
// loss curves), and then evaluated any number of times via Loss.
//
// The law is linear in the coefficients, so fitting is an ordinary
// least-squares solve; when the unconstrained solution turns a coefficient
// negative the fit falls back to the best non-negative solution, since
// negative loss coefficients are not physical.
package ironloss
