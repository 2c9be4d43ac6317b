package handler

import "net/http"

// GetBookingOptions handles GET /trips/{tripID}/hotels/{hotelID}/booking-options.
// ?link= selects the detail link; without it the hotel's own link is used.
func (s *Server) GetBookingOptions(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	hotelID, ok := pathUUID(w, r, "hotelID")
	if !ok {
		return
	}
	opts, err := s.booking.Get(r.Context(), tripID, hotelID, r.URL.Query().Get("link"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
