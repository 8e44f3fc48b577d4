// Package controller provides a client for the controller management API of
// the local overlay network service.
//
// The service listens on http://127.0.0.1:9993 and authenticates requests
// with the X-ZT1-Auth header. The client covers node status, network
// creation, retrieval, update and deletion, and member authorization.
//
// # Error Handling
//
// Every network or protocol failure is returned as a TRANSPORT_ERROR coded
// error (see internal/errors). A non-2xx response carries a *StatusError
// cause with the status code and a body excerpt; IsNotFound checks for 404.
// Create and Update run network.Validate first and return its
// ValidationErrors without contacting the controller.
//
// # Retries
//
// GET requests are retried (3 attempts, 1s apart by default) on network
// errors and 5xx responses. POST and DELETE requests are sent exactly once.
//
// # Example Usage
//
//	client := controller.NewClient(controller.Options{AuthToken: token}, nil)
//	created, err := client.Create(ctx, network.Default())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(created.NetworkID())
//
// The client implements the ControllerClient interface from the domain
// package, enabling dependency injection and testing with mocks.
package controller
