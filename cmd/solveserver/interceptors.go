package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/auth"
)

// Issuers whose tokens the solver accepts.
var allowedIssuers = []string{"classic-crypto", "classic-crypto.localhost"}

// NewAuthInterceptor rejects calls that do not carry a valid bearer JWT and
// stores the caller in the request context.
func NewAuthInterceptor(secretKey []byte) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx, err := authenticateJWT(ctx, req.Header(), secretKey)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(ctx, req)
		}
	}
}

func authenticateJWT(ctx context.Context, reqHeader http.Header, secretKey []byte) (context.Context, error) {
	authHeader := reqHeader.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("no auth method")
	}

	userToken := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(userToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithIssuedAt())
	if err != nil {
		log.Err(err).Msg("err-parsing-token")
		return nil, errors.New("could not parse token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("could not parse token claims")
	}

	iss, err := claims.GetIssuer()
	if err != nil || !slices.Contains(allowedIssuers, iss) {
		return nil, errors.New("unexpected iss claim")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.New("could not parse uid claim")
	}
	uid, err := strconv.Atoi(sub)
	if err != nil {
		return nil, errors.New("could not parse uid as an integer")
	}
	usn, ok := claims["usn"].(string)
	if !ok || usn == "" {
		return nil, errors.New("unexpected usn claim")
	}
	// Membership is optional for solver tokens.
	mbr, _ := claims["mbr"].(bool)

	return auth.WithCaller(ctx, auth.Caller{ID: uid, Username: usn, Member: mbr}), nil
}
