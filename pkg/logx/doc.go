// Package logx is a thin structured-logging facade over zerolog.
//
// It exists so the rest of the codebase can log through a stable, small API
// while sinks and levels stay reconfigurable at runtime (config hot-reload
// swaps outputs without invalidating loggers already handed out).
package logx
