package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/insurecost/docs.go -o docs`.
//
// @title           insurecost API
// @version         1.0
// @description     Annual medical insurance charge prediction and risk tiering.
//
// @contact.name   insurecost maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
