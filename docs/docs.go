// Package docs registers the OpenAPI description served at /api-docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/v1/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				]
			}
		},
		"/api/v1/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				]
			}
		},
		"/api/v1/auth/refresh": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Refresh tokens",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.refreshRequest"
						}
					}
				]
			}
		},
		"/api/v1/users/me": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Get current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"patch": {
				"tags": [
					"users"
				],
				"summary": "Update current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateProfileRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/trade-signals/public": {
			"get": {
				"tags": [
					"trade-signals"
				],
				"summary": "List approved signals",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				}
			}
		},
		"/api/v1/trade-signals": {
			"post": {
				"tags": [
					"trade-signals"
				],
				"summary": "Create a trade signal",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createSignalRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"get": {
				"tags": [
					"trade-signals"
				],
				"summary": "List my signals",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/trade-signals/admin": {
			"get": {
				"tags": [
					"trade-signals"
				],
				"summary": "List all signals",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/trade-signals/{id}": {
			"get": {
				"tags": [
					"trade-signals"
				],
				"summary": "Get a trade signal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"patch": {
				"tags": [
					"trade-signals"
				],
				"summary": "Update a trade signal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateSignalRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"trade-signals"
				],
				"summary": "Delete a trade signal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/trade-signals/{id}/status": {
			"patch": {
				"tags": [
					"trade-signals"
				],
				"summary": "Approve or reject a signal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateStatusRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/trade-signals/{id}/history": {
			"get": {
				"tags": [
					"trade-signals"
				],
				"summary": "Signal status history",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/discussions": {
			"get": {
				"tags": [
					"discussions"
				],
				"summary": "List discussions",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				}
			},
			"post": {
				"tags": [
					"discussions"
				],
				"summary": "Create a discussion",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createDiscussionRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/discussions/{id}": {
			"get": {
				"tags": [
					"discussions"
				],
				"summary": "Get a discussion",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"patch": {
				"tags": [
					"discussions"
				],
				"summary": "Update a discussion",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateDiscussionRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"discussions"
				],
				"summary": "Delete a discussion",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/discussions/{id}/comments": {
			"post": {
				"tags": [
					"discussions"
				],
				"summary": "Add a comment",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.addCommentRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/discussions/{id}/comments/{commentId}": {
			"delete": {
				"tags": [
					"discussions"
				],
				"summary": "Delete a comment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/v1/upload/image": {
			"post": {
				"tags": [
					"upload"
				],
				"summary": "Upload a signal image",
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "file",
						"name": "image",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Success envelope"
					},
					"400": {
						"description": "Validation failed"
					},
					"401": {
						"description": "Unauthorized"
					}
				}
			}
		}
	},
	"definitions": {
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"user",
						"admin"
					]
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.refreshRequest": {
			"type": "object",
			"properties": {
				"refreshToken": {
					"type": "string"
				}
			},
			"required": [
				"refreshToken"
			]
		},
		"handler.updateProfileRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				}
			}
		},
		"handler.createSignalRequest": {
			"type": "object",
			"properties": {
				"asset": {
					"type": "string"
				},
				"entryPrice": {
					"type": "number"
				},
				"stopLoss": {
					"type": "number"
				},
				"takeProfit": {
					"type": "number"
				},
				"timeframe": {
					"type": "string"
				},
				"rationale": {
					"type": "string"
				},
				"imageUrl": {
					"type": "string"
				}
			},
			"required": [
				"asset",
				"entryPrice",
				"stopLoss",
				"takeProfit",
				"timeframe",
				"rationale"
			]
		},
		"handler.updateSignalRequest": {
			"type": "object",
			"properties": {
				"asset": {
					"type": "string"
				},
				"entryPrice": {
					"type": "number"
				},
				"stopLoss": {
					"type": "number"
				},
				"takeProfit": {
					"type": "number"
				},
				"timeframe": {
					"type": "string"
				},
				"rationale": {
					"type": "string"
				},
				"imageUrl": {
					"type": "string"
				}
			}
		},
		"handler.updateStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"approved",
						"rejected"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"handler.createDiscussionRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"content": {
					"type": "string"
				}
			},
			"required": [
				"title",
				"content"
			]
		},
		"handler.updateDiscussionRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"content": {
					"type": "string"
				}
			}
		},
		"handler.addCommentRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			},
			"required": [
				"content"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Prims Trade API",
	Description:      "Trade signals, admin review and community discussions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
