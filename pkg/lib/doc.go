// Package lib provides a Go SDK to drive the kitchen programmatically.
//
// It allows applications to dispatch bake runs against the dough API, plan
// how the items are split in groups and drive cleaning sessions without
// shelling out to the kitchen CLI binary.
//
// # Quick Start
//
//	client, err := lib.New(lib.Config{
//	    Endpoint: "https://dough.pizza.com/makePizza",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	run, err := client.Bake(ctx, lib.BakeOpts{Workers: 7})
//	if err != nil {
//	    // The failed run is returned together with the error.
//	    log.Printf("run %s failed: %s", run.ID, err)
//	}
//
// # Cleaning
//
// Cleaning sessions are created on first use and kept by the client:
//
//	c, _ := client.Clean(ctx, "default", "order", "brush", "mop", "done")
//	fmt.Println(c.Clear) // true
//
// Actions not allowed by the current state are ignored, unknown action names
// return [ErrNotValid].
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrNotValid]: Invalid input.
//   - [ErrAlreadyProcessing]: A bake run is already being dispatched by the client.
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. Only one bake
// run is dispatched at a time.
package lib
