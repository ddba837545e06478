package middleware

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// ServerInfo muestra información profesional del servidor al iniciar
func ServerInfo(port string, logger *zap.Logger) {
	// Información del sistema
	hostname, _ := os.Hostname()

	// Información de Go
	goVersion := runtime.Version()
	numCPU := runtime.NumCPU()

	// Tiempo de inicio
	startTime := time.Now().Format("2006-01-02 15:04:05")

	// Banner del servidor
	fmt.Println("")
	fmt.Println("🚀 " + boldColor + "Nooryx Inventory Gateway" + resetColor)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("📅 Started at: " + startTime)
	fmt.Println("🌐 Server URL: " + cyanColor + "http://localhost:" + port + resetColor)
	fmt.Println("💻 Hostname: " + hostname)
	fmt.Println("🔧 Go Version: " + goVersion)
	fmt.Println("⚡ CPU Cores: " + fmt.Sprintf("%d", numCPU))
	fmt.Println("")
	fmt.Println("📊 " + boldColor + "Available Endpoints:" + resetColor)
	fmt.Println("   GET  " + greenColor + "/" + resetColor + "                        - API Information")
	fmt.Println("   GET  " + greenColor + "/health" + resetColor + "                  - Health Check")
	fmt.Println("   GET  " + greenColor + "/api/v1/dashboard/message" + resetColor + " - Inventory Health Message")
	fmt.Println("   GET  " + greenColor + "/api/v1/forms/:action" + resetColor + "    - Transaction Forms")
	fmt.Println("   POST " + blueColor + "/api/v1/transactions/:action" + resetColor + " - Submit Transaction")
	fmt.Println("")
	fmt.Println("🔍 " + boldColor + "Monitoring:" + resetColor)
	fmt.Println("   📈 Status: " + cyanColor + "http://localhost:" + port + "/api/v1/status" + resetColor)
	fmt.Println("   🔌 Live Feed: " + cyanColor + "ws://localhost:" + port + "/api/v1/status/ws" + resetColor)
	fmt.Println("")
	fmt.Println("⚙️  " + boldColor + "Environment:" + resetColor)
	fmt.Println("   🔗 Upstream: Inventory API")
	fmt.Println("   🗃️  Cache: Redis + L1")
	fmt.Println("   📝 Logging: Structured (Zap)")
	fmt.Println("")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("✨ " + boldColor + "Server is ready to handle requests!" + resetColor)
	fmt.Println("")

	// Log estructurado
	logger.Info("Server started successfully",
		zap.String("port", port),
		zap.String("hostname", hostname),
		zap.String("go_version", goVersion),
		zap.Int("cpu_cores", numCPU),
		zap.String("start_time", startTime),
	)
}
