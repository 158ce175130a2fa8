/*
Package gtfs provides static schedule loading and indexing.

Three tables are read from the dataset directory: translations.txt
(local station name → canonical fragment), stops.txt (station name →
stop id) and stop_times.txt (per-trip scheduled stop rows). The tables
are parsed once into in-memory lookup structures; per-request work never
touches the filesystem.

Time strings in stop_times.txt follow the service-day convention: hours
run 00–29, where 24:xx and above denote post-midnight continuation of
the previous calendar day's schedule. The store hands these strings out
verbatim; interpretation is the estimator's job.

Store.Reload swaps the whole index atomically, so the archive refresh
job can replace the dataset while estimations are in flight.
*/
package gtfs
