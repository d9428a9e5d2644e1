package actions

// A list of status codes used inside the application. For more details see: https://httpstatuses.com/

// OK - success
const OK = 200

// NoContent - the request passed the gate and there is nothing to forward it to
const NoContent = 204

// BadRequest - sent when a bad request was submitted by the client
const BadRequest = 400

// Unauthorized - when the user did not login before attempting to access the resource
const Unauthorized = 401

// AccessDenied - when the use does not have access to the resource with the given login token
const AccessDenied = 403

// ValidationFailed - the request did not pass field verification
const ValidationFailed = 422

// ServerError - internal server error
const ServerError = 500

// BadGateway - the upstream site could not be reached
const BadGateway = 502

// ServiceUnavailable - the site is in maintenance
const ServiceUnavailable = 503
