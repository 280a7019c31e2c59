// Package station defines the computing block contract implemented by every
// processing station, plus a registry that maps station type names to
// factories so that schemas can be declared from configuration.
package station
