// Package reload triggers configuration reloads of dependent services.
//
// Two mechanisms are available, selected by reload.method:
//   - command: runs a command template such as "service %s reload"
//   - systemd: queues a reload job for <service>.service over D-Bus
package reload
