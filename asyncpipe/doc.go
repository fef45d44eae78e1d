// See asyncpipe.go for the package doc comment; this file groups the
// internal engine's stages for quick reference:
//
//	TightenConsumeRegions  - narrow ProducerConsumer consume markers
//	ForkAsyncProducers      - split async Realize bodies into a producer/
//	                          consumer Fork, coordinated by semaphores
//	ExpandAcquireNodes      - hoist Acquire outward past adjacent work
//	TightenForkNodes        - hoist shared bindings above a Fork, drop
//	                          dead ones inside it, collapse no-op forks
//	LowerSemaphores         - replace make_semaphore with alloca + init
package asyncpipe
