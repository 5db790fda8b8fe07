//go:generate mockgen -source=../sink.go -destination=./mock_sink.go -package=mocks

package mocks
