/*
Package estimator answers "which train is this person boarding, and when
does it reach the destination".

The pipeline has two halves. NearestDeparture works on the live
timetable: every departure is mapped onto concrete instants around now
(including the post-midnight service-day notation where hours run up to
29) and the temporally closest one wins. CrossReference then pivots from
the live train identifier into the static stop-time table via
trailing-suffix trip matching and a departure-time prefix match that
tolerates the 00:/24: midnight spelling mismatch between the two
datasets, and reads off the destination's scheduled arrival time.

Both halves are deterministic: ties and ambiguous matches resolve
first-wins in input order.
*/
package estimator
