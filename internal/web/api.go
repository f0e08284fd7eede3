package web

import "github.com/gofiber/fiber/v2"

const (
	CodeOK         = "000"
	CodeBadRequest = "400"
	CodeNotFound   = "404"
	CodeConflict   = "409"
	CodeInternal   = "500"

	MsgSuccess         = "success"
	MsgInvalidBody     = "invalid request body"
	MsgFileRequired    = "file is required"
	MsgSessionNotFound = "session not found"
	SomeThingWentWrong = "something went wrong"
)

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
}

func reply(c *fiber.Ctx, status int, code, message string, body any) error {
	return c.Status(status).JSON(Response{
		Code:    code,
		Message: message,
		Body:    body,
	})
}

func Ok(c *fiber.Ctx, body any) error {
	return reply(c, fiber.StatusOK, CodeOK, MsgSuccess, body)
}

func Created(c *fiber.Ctx, body any) error {
	return reply(c, fiber.StatusCreated, CodeOK, MsgSuccess, body)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return reply(c, fiber.StatusBadRequest, CodeBadRequest, message, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return reply(c, fiber.StatusNotFound, CodeNotFound, message, nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return reply(c, fiber.StatusConflict, CodeConflict, message, nil)
}

func InternalError(c *fiber.Ctx, message string) error {
	return reply(c, fiber.StatusInternalServerError, CodeInternal, message, nil)
}
