// Package smp runs parallel assignments: a Controller owns the worker and
// scratch memory budget, an Executor splits index ranges across workers.
package smp
