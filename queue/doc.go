/*
Package queue defines the tasks cross-validation workers perform
as well as an interface for a Queue to manage them.

It also provides an in-memory implementation of the Queue interface
*/
package queue
