package urls

// Documentation URLs for guides and troubleshooting

// ScheduledEvents describes the endpoint, the event document and the
// approval protocol.
const ScheduledEvents = "https://learn.microsoft.com/azure/virtual-machines/linux/scheduled-events"

// WindowsScheduledEvents is the Windows variant of the scheduled events guide
const WindowsScheduledEvents = "https://learn.microsoft.com/azure/virtual-machines/windows/scheduled-events"

// DHCPClientOptions documents DhcpRequestParams and the option request flags
const DHCPClientOptions = "https://learn.microsoft.com/windows/win32/api/dhcpcsdk/nf-dhcpcsdk-dhcprequestparams"
