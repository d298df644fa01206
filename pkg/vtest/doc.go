// Package vtest provides helpers for testing code built on the fiber
// scheduler: deadlines that expire after a fixed number of checks and a
// host adapter that records every call and can be told to fail.
//
// A typical test pairs a Recorder around a host.Memory with a UnitBudget:
//
//	mem := host.NewMemory()
//	rec := vtest.NewRecorder(mem)
//	s := fiber.New(rec, nil)
//	s.Render(view, mem.Container())
//	s.Tick(ctx, vtest.NewUnitBudget(3)) // at most three units
package vtest
