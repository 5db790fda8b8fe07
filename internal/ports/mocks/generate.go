//go:generate mockgen -source=../entry_repository.go   -destination=./mock_entry_repository.go   -package=mocks
//go:generate mockgen -source=../validator.go          -destination=./mock_validator.go          -package=mocks
//go:generate mockgen -source=../logger.go             -destination=./mock_logger.go             -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks
//go:generate mockgen -source=../entry_read_service.go -destination=./mock_entry_read_service.go -package=mocks

package mocks
