package schedule

import "github.com/theoremus-urban-solutions/smart-schedule/utils"

// findOutboundFerry returns the first sailing departing no earlier than the
// train's arrival at the ferry terminal, or nil when none remains.
func findOutboundFerry(trainArrival string, ferries []FerryConnection) *FerryConnection {
	arrivalMinutes := utils.ParseTimeToMinutes(trainArrival)
	if arrivalMinutes < 0 {
		return nil
	}
	for i := range ferries {
		if utils.ParseTimeToMinutes(ferries[i].Depart) >= arrivalMinutes {
			f := ferries[i]
			return &f
		}
	}
	return nil
}

// findInboundFerry returns the sailing whose arrival is latest while still
// strictly before the train's departure, minimizing the transfer wait. The
// wait is never negative. Returns nil when no sailing lands in time.
func findInboundFerry(trainDeparture string, ferries []FerryConnection) *FerryConnection {
	depMinutes := utils.ParseTimeToMinutes(trainDeparture)
	if depMinutes < 0 {
		return nil
	}
	var best *FerryConnection
	bestWait := -1
	for i := range ferries {
		arr := utils.ParseTimeToMinutes(ferries[i].Arrive)
		if arr < 0 || arr >= depMinutes {
			continue
		}
		wait := depMinutes - arr
		if best == nil || wait < bestWait {
			f := ferries[i]
			best = &f
			bestWait = wait
		}
	}
	return best
}

// OutboundTransferMinutes is the wait between the train's arrival at the
// ferry terminal and the linked outbound sailing. Returns -1 when the trip
// has no outbound ferry or the times cannot be compared.
func (p *ProcessedTrip) OutboundTransferMinutes() int {
	if p.OutboundFerry == nil {
		return -1
	}
	arr := utils.ParseTimeToMinutes(p.Times[StationIndexOf(FerryStation)])
	dep := utils.ParseTimeToMinutes(p.OutboundFerry.Depart)
	if arr < 0 || dep < 0 {
		return -1
	}
	return dep - arr
}

// InboundTransferMinutes is the wait between the linked inbound sailing's
// arrival and the train's departure from the ferry terminal. Returns -1 when
// the trip has no inbound ferry or the times cannot be compared.
func (p *ProcessedTrip) InboundTransferMinutes() int {
	if p.InboundFerry == nil {
		return -1
	}
	arr := utils.ParseTimeToMinutes(p.InboundFerry.Arrive)
	dep := utils.ParseTimeToMinutes(p.Times[StationIndexOf(FerryStation)])
	if arr < 0 || dep < 0 {
		return -1
	}
	return dep - arr
}
