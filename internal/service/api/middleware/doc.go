// Package middleware API 서버의 Echo 미들웨어를 제공합니다.
package middleware
