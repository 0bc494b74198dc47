/*
Package jsondb stores users and articles in JSON files.

The data directory contains two independent JSON arrays, usuarios.json and articulos.json,
and secuencias.json, which holds the last assigned id of each kind. Ids are never reused,
even after the newest record has been deleted.

Every write replaces a whole file (temporary file and rename), so a single write is atomic.
There is no locking across read-modify-write cycles: concurrent writers, in one process or
several, can lose updates. Use the sql backend if that matters.
*/
package jsondb
